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

// Package archive stores the results of finished tournaments.
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"laptudirm.com/x/breakthrough/pkg/tournament"
)

// Supported archive formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Record is the archived form of a tournament.
type Record struct {
	ID        string    `yaml:"id" json:"tournament_id"`
	Player1   string    `yaml:"player1" json:"player1"`
	Player2   string    `yaml:"player2" json:"player2"`
	Games     int       `yaml:"games" json:"num_games"`
	Timestamp time.Time `yaml:"timestamp" json:"timestamp"`

	Results []tournament.GameResult `yaml:"results" json:"games"`
}

// NewRecord builds the archive record of a tournament which has been run.
func NewRecord(tour *tournament.Tournament) Record {
	players := tour.Players()
	return Record{
		ID:        tour.ID(),
		Player1:   players[0],
		Player2:   players[1],
		Games:     tour.Config.Games,
		Timestamp: tour.Start().UTC(),
		Results:   tour.Results(),
	}
}

// A Sink stores tournament records somewhere.
type Sink interface {
	Write(ctx context.Context, record Record) error
}

// MultiSink writes a record to every one of its sinks, even if some of
// them fail.
type MultiSink []Sink

func (sinks MultiSink) Write(ctx context.Context, record Record) error {
	var result *multierror.Error
	for _, sink := range sinks {
		if err := sink.Write(ctx, record); err != nil {
			result = multierror.Append(result, err)
		}
	}

	return result.ErrorOrNil()
}

// Marshal encodes a record in the given format.
func Marshal(record Record, format string) ([]byte, error) {
	switch format {
	case FormatYAML, "":
		return yaml.Marshal(record)
	case FormatJSON:
		return json.MarshalIndent(record, "", "  ")
	default:
		return nil, fmt.Errorf("marshal record: unknown format %s", format)
	}
}

// Unmarshal decodes a record encoded in the given format.
func Unmarshal(data []byte, format string) (Record, error) {
	var record Record

	var err error
	switch format {
	case FormatYAML, "":
		err = yaml.Unmarshal(data, &record)
	case FormatJSON:
		err = json.Unmarshal(data, &record)
	default:
		err = fmt.Errorf("unknown format %s", format)
	}

	if err != nil {
		return Record{}, fmt.Errorf("unmarshal record: %w", err)
	}

	return record, nil
}

// Load reads an archived record from a file, guessing its format from the
// file's extension.
func Load(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, err
	}

	format := FormatYAML
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		format = FormatJSON
	case ".yaml", ".yml":
	default:
		return Record{}, fmt.Errorf("load record: unknown extension of %s", path)
	}

	return Unmarshal(data, format)
}
