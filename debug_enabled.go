// Copyright 2024 Ahmad Sameh(asmsh)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build vfuture_debug

package promise

import "fmt"

// assertDebug panics immediately if cond is false. Only compiled in
// under the vfuture_debug build tag, so it carries no cost in a normal
// build; see debug_disabled.go for the no-op counterpart.
func assertDebug(cond bool, ev debugEvent, detail string) {
	if !cond {
		panic(fmt.Sprintf("promise: debug assertion failed at event %d: %s", ev, detail))
	}
}
