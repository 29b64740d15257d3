/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Command initdb is the one-shot bootstrap for the prediction store: it
// reads the POSTGRES_* environment variables, opens a single connection,
// ensures the predictions table exists, and exits. Re-running it is always
// safe.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/tomoncle/visiondb/config"
	"github.com/tomoncle/visiondb/database"
	_ "github.com/tomoncle/visiondb/model"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "initdb:", err)
		os.Exit(1)
	}
	fmt.Println("Database initialized successfully.")
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	initializer := database.NewInitializer(cfg.ConnectionConfig())
	return initializer.Run(context.Background())
}
