package postboard

import "github.com/zyra/postboard/log"

// Logger for the component and its transports. *zap.SugaredLogger and
// log.Default both satisfy it.
type Logger = log.Logger

func loggerOrDefault(l Logger) Logger {
	if l == nil {
		return log.Default
	}
	return l
}
