package env

import (
	"os"
	"strconv"
	"strings"

	"github.com/ducksouplab/motion/helpers"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	TimeFormat = "20060102-150405.000"
)

var GeneratePlots bool
var Workers int
var ConfigFile, Mode, Port, StatsLogin, StatsPassword, WebPrefix string
var AllowedWSOrigins []string

func init() {
	Mode = helpers.GetenvOr("MOTION_MODE", "PROD")
	if Mode == "DEV" {
		if err := godotenv.Load(".env"); err != nil {
			log.Fatal().Err(err).Msg("app_crashed")
		}
	}

	// bools
	if strings.ToLower(os.Getenv("MOTION_GENERATE_PLOTS")) == "true" {
		GeneratePlots = true
	}

	// ints
	var err error
	Workers, err = strconv.Atoi(os.Getenv("MOTION_WORKERS"))
	if err != nil || Workers < 1 {
		Workers = 4
	}

	// strings
	ConfigFile = helpers.GetenvOr("MOTION_CONFIG", "config/motion.yml")
	Port = os.Getenv("MOTION_PORT")
	if len(Port) < 2 {
		Port = "8100"
	}
	// for instance "/path" if the server is reachable at https://host/path
	WebPrefix = helpers.GetenvOr("MOTION_WEB_PREFIX", "")
	// basic Auth
	StatsLogin = helpers.GetenvOr("MOTION_STATS_LOGIN", "motion")
	StatsPassword = helpers.GetenvOr("MOTION_STATS_PASSWORD", "motion")
	// origins
	originsUnsplit := os.Getenv("MOTION_ALLOWED_WS_ORIGINS")
	if len(originsUnsplit) > 0 {
		AllowedWSOrigins = append(AllowedWSOrigins, strings.Split(originsUnsplit, ",")...)
	}
	if Mode == "DEV" {
		AllowedWSOrigins = append(AllowedWSOrigins, "http://localhost:"+Port)
	}

	// other global configuration
	loadLogSettings()
	configureGlobalLogger()
}
