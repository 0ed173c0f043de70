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
	"fmt"

	"github.com/spf13/cobra"

	"laptudirm.com/x/breakthrough/pkg/agent"
	"laptudirm.com/x/breakthrough/pkg/common"
	"laptudirm.com/x/breakthrough/pkg/env"
)

func APIs() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apis",
		Short: "Lists the language model APIs which have keys configured",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("env-file")
			cfg, err := env.Load(path)
			if err != nil {
				return err
			}

			keys := cfg.Keys()
			apis := []struct {
				name, key string
			}{
				{agent.TypeOpenAI, keys.OpenAI},
				{agent.TypeAnthropic, keys.Anthropic},
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "\x1b[32mAgent APIs\x1b[0m:")
			for _, api := range apis {
				status := "\x1b[31mmissing key\x1b[0m"
				if api.key != "" {
					status = "\x1b[33mconfigured\x1b[0m"
				}

				name := fmt.Sprintf("\x1b[34m%s\x1b[0m:", api.name)
				fmt.Fprintf(out, "- %-20s %s\n", name, status)
			}

			fmt.Fprintf(out, "- %-20s %s\n", "\x1b[34mrandom\x1b[0m:", "\x1b[33malways available\x1b[0m")
			return nil
		},
	}

	cmd.Flags().String("env-file", common.EnvFile, "File to read API keys from")
	return cmd
}
