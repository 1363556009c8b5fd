// Package version reports the build version of scenariokit binaries.
package version
