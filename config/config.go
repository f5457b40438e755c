package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug             = "debug"
	ConfigSearchDepth       = "search-depth"
	ConfigEvalMode          = "eval-mode"
	ConfigEndgameTurn       = "endgame-turn"
	ConfigEndgameDepth      = "endgame-depth"
	ConfigWeightsPath       = "weights-path"
	ConfigEvalCacheFraction = "eval-cache-fraction"
	ConfigNodeBudget        = "node-budget"
	ConfigTimeLimitMs       = "time-limit-ms"
	ConfigNatsURL           = "nats-url"
	ConfigBotSubject        = "bot-subject"
	ConfigAutoplayThreads   = "autoplay-threads"
	ConfigAutoplayGames     = "autoplay-games"
	ConfigAutoplayLog       = "autoplay-log"
	ConfigRandomOpenings    = "random-openings"
)

// EnvPrefix is prepended to every key to get its environment variable, so
// search-depth is read from REVERSI_SEARCH_DEPTH.
const EnvPrefix = "REVERSI"

type Config struct {
	*viper.Viper
	// args are the positional arguments left after flag parsing.
	args []string
}

// DefaultConfig returns a config holding only the defaults.
func DefaultConfig() *Config {
	c := &Config{Viper: viper.New()}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigSearchDepth, 4)
	c.SetDefault(ConfigEvalMode, "dynamic")
	c.SetDefault(ConfigEndgameTurn, 50)
	c.SetDefault(ConfigEndgameDepth, 60)
	c.SetDefault(ConfigWeightsPath, "")
	c.SetDefault(ConfigEvalCacheFraction, 0.0)
	c.SetDefault(ConfigNodeBudget, 0)
	c.SetDefault(ConfigTimeLimitMs, 0)
	c.SetDefault(ConfigNatsURL, "nats://localhost:4222")
	c.SetDefault(ConfigBotSubject, "reversi.bot")
	c.SetDefault(ConfigAutoplayThreads, 4)
	c.SetDefault(ConfigAutoplayGames, 100)
	c.SetDefault(ConfigAutoplayLog, "/tmp/reversi-autoplay.txt")
	c.SetDefault(ConfigRandomOpenings, 4)
}

// Load reads the config from, in decreasing order of precedence, the
// command line args, REVERSI_* environment variables and the defaults.
func (c *Config) Load(args []string) error {
	if c.Viper == nil {
		c.Viper = viper.New()
	}
	c.setDefaults()

	c.SetEnvPrefix(EnvPrefix)
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	fs := pflag.NewFlagSet("reversi", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.Int(ConfigSearchDepth, 4, "plies to look ahead before the endgame")
	fs.String(ConfigEvalMode, "dynamic", "evaluation function: static or dynamic")
	fs.Int(ConfigEndgameTurn, 50, "turn from which the search runs to the end of the game")
	fs.Int(ConfigEndgameDepth, 60, "search depth used in the endgame")
	fs.String(ConfigWeightsPath, "", "YAML file of evaluation weights; defaults are used if empty")
	fs.Float64(ConfigEvalCacheFraction, 0, "fraction of system memory for the evaluation cache; 0 disables it")
	fs.Int(ConfigNodeBudget, 0, "stop searching after this many expanded nodes; 0 means no limit")
	fs.Int(ConfigTimeLimitMs, 0, "stop searching after this many milliseconds; 0 means no limit")
	fs.String(ConfigNatsURL, "nats://localhost:4222", "the NATS server URL")
	fs.String(ConfigBotSubject, "reversi.bot", "the NATS subject the bot answers on")
	fs.Int(ConfigAutoplayThreads, 4, "concurrent games during autoplay")
	fs.Int(ConfigAutoplayGames, 100, "games to play during autoplay")
	fs.String(ConfigAutoplayLog, "/tmp/reversi-autoplay.txt", "per-move log file for autoplay")
	fs.Int(ConfigRandomOpenings, 4, "random moves at the start of each autoplay game")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c.args = fs.Args()
	// Only flags that were actually given override env and defaults.
	var bindErr error
	fs.Visit(func(f *pflag.Flag) {
		if err := c.BindPFlag(f.Name, f); err != nil && bindErr == nil {
			bindErr = err
		}
	})
	return bindErr
}

// Args returns the non-flag command line arguments seen by Load.
func (c *Config) Args() []string {
	return c.args
}
