// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package common holds the directories and files shared by the commands.
package common

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const FilePermissions = 0755

var (
	// Directory is the root of everything stored by breakthrough.
	Directory = filepath.Join(xdg.DataHome, "breakthrough")

	// DataDirectory holds the archived tournaments, LogDirectory the
	// summaries and log files.
	DataDirectory = filepath.Join(Directory, "data")
	LogDirectory  = filepath.Join(Directory, "logs")

	// EnvFile is the default file API keys are read from.
	EnvFile = ".env"
)

// TryMkdir creates dir and its parents if it does not exist yet.
func TryMkdir(dir string) error {
	_, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return os.MkdirAll(dir, FilePermissions)
	}

	return err
}
