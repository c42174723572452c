//go:build amd64

/*
 * MinIO Cloud Storage, (C) 2022 MinIO, Inc.
 *
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

package smilejson

import (
	"testing"

	"github.com/bytedance/sonic"
)

func BenchmarkParseSonic(b *testing.B) {
	msg := benchPayload()
	b.SetBytes(int64(len(msg)))
	b.ReportAllocs()
	b.ResetTimer()
	var parsed interface{}
	for i := 0; i < b.N; i++ {
		if err := sonic.Unmarshal(msg, &parsed); err != nil {
			b.Fatal(err)
		}
	}
}
