package log

import (
	"sync/atomic"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var current atomic.Pointer[zap.Logger]

func init() {
	current.Store(zap.NewNop())
}

// Init builds the process logger. Production uses the JSON encoder; any
// other env gets the colored console encoder. logFile adds a second sink.
func Init(env, logFile string) error {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	if logFile != "" {
		cfg.OutputPaths = append(cfg.OutputPaths, logFile)
	}
	l, err := cfg.Build()
	if err != nil {
		return err
	}
	Use(l)
	return nil
}

// Use swaps the process logger and returns a func restoring the old one.
func Use(l *zap.Logger) (restore func()) {
	old := current.Swap(l)
	return func() { current.Store(old) }
}

// L returns the process logger for code that has no request at hand.
func L() *zap.Logger { return current.Load() }

func Sync() { _ = L().Sync() }

func write(level zapcore.Level, kind string, c *fiber.Ctx, action string, err error, fields map[string]any) {
	l := L()
	if ce := l.Check(level, action); ce != nil {
		zf := make([]zap.Field, 0, 8)
		zf = append(zf, zap.String("kind", kind))
		if c != nil {
			zf = append(zf,
				zap.String("ip", c.IP()),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Int("status", c.Response().StatusCode()),
			)
			if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
				zf = append(zf, zap.String("req_id", rid))
			}
			if uid, ok := c.Locals("user_id").(string); ok && uid != "" {
				zf = append(zf, zap.String("user_id", uid))
			}
		}
		if err != nil {
			zf = append(zf, zap.Error(err))
		}
		if len(fields) > 0 {
			zf = append(zf, zap.Any("fields", fields))
		}
		ce.Write(zf...)
	}
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	write(zapcore.InfoLevel, "info", c, action, nil, fields)
}

func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write(zapcore.InfoLevel, "audit", c, action, nil, fields)
}

func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write(zapcore.WarnLevel, "security", c, action, nil, fields)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write(zapcore.ErrorLevel, "error", c, action, err, fields)
}
