// Copyright 2025 Scott Friedman
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package compute

import "strings"

// Compute Engine resources reference each other by self link URL, e.g.
// https://www.googleapis.com/compute/v1/projects/p/zones/us-central1-a/instances/vm-1.
// These helpers pull the interesting short names back out.

// ZoneFromLink returns the zone segment of a self link, or "" when the
// link carries none.
func ZoneFromLink(link string) string {
	return segmentAfter(link, "zones")
}

// RegionFromLink returns the region segment of a self link, or "" when
// the link carries none.
func RegionFromLink(link string) string {
	return segmentAfter(link, "regions")
}

// ProjectFromLink returns the project segment of a self link, or ""
// when the link carries none.
func ProjectFromLink(link string) string {
	return segmentAfter(link, "projects")
}

// NameFromLink returns the final path segment of a self link, which for
// resource links is the resource's short name.
func NameFromLink(link string) string {
	link = strings.TrimSuffix(link, "/")
	if i := strings.LastIndex(link, "/"); i >= 0 {
		return link[i+1:]
	}
	return link
}

func segmentAfter(link, marker string) string {
	parts := strings.Split(link, "/")
	for i, part := range parts {
		if part == marker && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}
