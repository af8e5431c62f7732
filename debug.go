// Copyright 2023 Ahmad Sameh(asmsh)
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

package promise

// debugEvent names a point in a cell's lifecycle that assertDebug
// checks, under the vfuture_debug build tag. These never run in a
// normal build; they exist for the test suite to catch a broken
// invariant immediately instead of downstream, as a corrupted phase
// word or a dropped continuation.
type debugEvent int

const (
	_ debugEvent = iota

	debugInstallOnPending
	debugInstallOnResolved
	debugDepositOnPending
	debugDepositOnArmed
)
