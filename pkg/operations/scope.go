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

// Package operations coordinates Compute Engine long-running operations.
//
// Every mutating Compute Engine call returns an operation handle
// immediately; the real outcome is only known once that operation reaches
// a terminal state on the server. A Waiter polls a single operation until
// it is terminal, and a Tracker batches up the operations issued while a
// command processes its inputs so they can all be waited on uniformly at
// the end of the invocation.
package operations

import "fmt"

type scopeKind int

const (
	scopeGlobal scopeKind = iota
	scopeRegion
	scopeZone
)

// Scope identifies which operations.get endpoint can poll a given
// operation. Compute Engine reports global, regional, and zonal
// operations through three separate endpoints, so an operation can only
// be polled with the scope it was created under.
type Scope struct {
	kind    scopeKind
	Project string
	// Location is the region or zone name. Empty for global scope.
	Location string
}

// GlobalScope returns the scope for project-wide operations such as
// firewall and network mutations.
func GlobalScope(project string) Scope {
	return Scope{kind: scopeGlobal, Project: project}
}

// RegionScope returns the scope for operations in a single region.
func RegionScope(project, region string) Scope {
	return Scope{kind: scopeRegion, Project: project, Location: region}
}

// ZoneScope returns the scope for operations in a single zone, such as
// instance and disk mutations.
func ZoneScope(project, zone string) Scope {
	return Scope{kind: scopeZone, Project: project, Location: zone}
}

// IsGlobal reports whether the scope polls the global endpoint.
func (s Scope) IsGlobal() bool { return s.kind == scopeGlobal }

// IsRegion reports whether the scope polls a regional endpoint.
func (s Scope) IsRegion() bool { return s.kind == scopeRegion }

// IsZone reports whether the scope polls a zonal endpoint.
func (s Scope) IsZone() bool { return s.kind == scopeZone }

// String returns the scope in the form used by operation self links.
func (s Scope) String() string {
	switch s.kind {
	case scopeRegion:
		return fmt.Sprintf("projects/%s/regions/%s", s.Project, s.Location)
	case scopeZone:
		return fmt.Sprintf("projects/%s/zones/%s", s.Project, s.Location)
	default:
		return fmt.Sprintf("projects/%s/global", s.Project)
	}
}
