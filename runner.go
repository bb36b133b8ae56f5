package sqlscript

import (
	"context"

	"github.com/gofrs/uuid"
	"github.com/sirupsen/logrus"
)

// Runner executes scripts statement by statement
type Runner struct {
	// Logger defaults to logrus.StandardLogger()
	Logger logrus.FieldLogger

	// Transaction makes the whole run a single transaction, so that
	// either every script is applied or none of them are
	Transaction bool

	// Variables are replaced in the statements before they are executed,
	// and take precedence over the variables the scripts were loaded with
	Variables map[string]string
}

// Run executes the statements of scripts in order and stops at the first
// failure. Errors from the database are wrapped so that they refer to the
// line in the script file.
func (r Runner) Run(ctx context.Context, dbc DB, scripts ...Script) error {
	logger := r.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	runID, err := uuid.NewV4()
	if err != nil {
		return err
	}
	logger = logger.WithField("run", runID.String())

	run := func(x execer) error {
		for _, script := range scripts {
			if err := r.runScript(ctx, logger, x, script); err != nil {
				return err
			}
		}
		return nil
	}

	if r.Transaction {
		err = withTx(ctx, dbc, run)
	} else {
		err = run(dbc)
	}
	if err != nil {
		logger.WithError(err).Error("run failed")
		return err
	}
	return nil
}

func (r Runner) runScript(ctx context.Context, logger logrus.FieldLogger, x execer, script Script) error {
	batches := script.Patched(r.Variables)
	for _, b := range batches {
		if err := ctx.Err(); err != nil {
			return userError(err, b)
		}
		logger.WithFields(logrus.Fields{
			"file":      b.StartPos.File,
			"line":      b.StartPos.Line,
			"delimiter": b.Delimiter,
		}).Debug("executing statement")

		if _, err := x.ExecContext(ctx, b.Lines); err != nil {
			return userError(err, b)
		}
	}
	logger.WithFields(logrus.Fields{
		"file":       script.File,
		"checksum":   script.Checksum,
		"statements": len(batches),
	}).Info("script done")
	return nil
}
