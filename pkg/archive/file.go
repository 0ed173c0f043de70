package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/breakthrough/pkg/common"
)

// FileSink writes every record to its own file in Dir.
type FileSink struct {
	Dir    string
	Format string
}

// Path returns the file a record with the given id is written to.
func (sink *FileSink) Path(id string) string {
	format := sink.Format
	if format == "" {
		format = FormatYAML
	}

	return filepath.Join(sink.Dir, fmt.Sprintf("tournament_%s.%s", id, format))
}

func (sink *FileSink) Write(_ context.Context, record Record) error {
	data, err := Marshal(record, sink.Format)
	if err != nil {
		return err
	}

	if err := common.TryMkdir(sink.Dir); err != nil {
		return fmt.Errorf("file sink: %w", err)
	}

	path := sink.Path(record.ID)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("file sink: %w", err)
	}

	logrus.Infof("Tournament results saved to %s", path)
	return nil
}
