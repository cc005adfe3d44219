/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package apis

// Namer lets a payload type choose its own diagnostic name.
// EntityName must be cheap, deterministic and independent of instance state.
type Namer interface {
	EntityName() string
}

// Destroyer is implemented by payloads that need explicit teardown when the
// last owning handle goes away. The default deleter calls Destroy; if the
// payload does not implement it but implements io.Closer, Close is called.
type Destroyer interface {
	Destroy()
}
