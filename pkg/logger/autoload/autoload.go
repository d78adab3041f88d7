// Package autoload initializes the global logger from LOG_* variables when
// imported for side effects.
package autoload

import (
	"github.com/kelseyhightower/envconfig"
	logx "github.com/tanpawarit/career-handoff/pkg/logger"
)

func init() {
	var conf logx.Config
	if err := envconfig.Process("LOG", &conf); err != nil {
		logx.Init()
		return
	}
	logx.Init(conf)
}
