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

package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version of breakthrough.
const Version = "v0.1.0"

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "breakthrough",
		Short: "Pit game playing agents against each other at Breakthrough",
		Args:  cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if level := cmd.Flag("log-level"); level.Changed {
				lvl, err := logrus.ParseLevel(level.Value.String())
				if err != nil {
					return err
				}

				logrus.SetLevel(lvl)
			}

			// If --trace flag is provided, set logging level to Trace.
			if cmd.Flag("trace").Changed {
				logrus.SetLevel(logrus.TraceLevel)
			}

			return nil
		},
	}

	// global flags
	root.PersistentFlags().BoolP("help", "h", false, "Show Help Information")
	root.PersistentFlags().BoolP("version", "v", false, "Show Breakthrough's Version")
	root.PersistentFlags().BoolP("trace", "t", false, "Show Trace Information")
	root.PersistentFlags().String("log-level", "info", "Logging level (trace, debug, info, warn, error)")

	root.SetVersionTemplate(Version + "\n")
	root.Version = Version

	// Register the various commands.
	root.AddCommand(Tournament())
	root.AddCommand(APIs())
	root.AddCommand(Replay())
	root.AddCommand(VersionCmd())

	return root
}
