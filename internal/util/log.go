package util

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/breakthrough/pkg/common"
)

// LogFile is the name of the log file kept in a log directory.
const LogFile = "breakthrough.log"

// TeeLog makes the standard logger also write to the log file in dir. The
// returned closer restores the previous output and closes the file.
func TeeLog(dir string) (io.Closer, error) {
	if err := common.TryMkdir(dir); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(filepath.Join(dir, LogFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	logger := logrus.StandardLogger()
	previous := logger.Out
	logger.SetOutput(io.MultiWriter(previous, file))

	return &tee{file: file, previous: previous}, nil
}

type tee struct {
	file     *os.File
	previous io.Writer
}

func (t *tee) Close() error {
	logrus.SetOutput(t.previous)
	return t.file.Close()
}
