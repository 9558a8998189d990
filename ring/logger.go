// Copyright 2025 The fastntt Authors
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

package ring

import "github.com/charmbracelet/log"

// logger emits Debug lines for ring construction and omega cache
// traffic. Silent at the default level.
var logger = log.Default().WithPrefix("ring")

// SetLogger replaces the package logger, letting applications route or
// silence ring diagnostics.
func SetLogger(l *log.Logger) {
	logger = l
}
