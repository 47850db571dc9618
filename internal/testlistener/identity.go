package testlistener

import (
	"regexp"
	"strings"
	"time"
)

const (
	qualifiedNameSeparatorConstant   = "."
	packagePathSeparatorConstant     = "/"
	methodDescriptionPatternConstant = `^.*\.(.*\..*)\(.*\)`
)

var methodDescriptionExpression = regexp.MustCompile(methodDescriptionPatternConstant)

// Identity names a single test.
type Identity struct {
	Package string
	Name    string
}

// QualifiedName joins the last element of the package import path with the test name.
func (identity Identity) QualifiedName() string {
	packagePath := strings.TrimSpace(identity.Package)
	if len(packagePath) == 0 {
		return identity.Name
	}
	packageName := packagePath
	if separatorIndex := strings.LastIndex(packagePath, packagePathSeparatorConstant); separatorIndex >= 0 {
		packageName = packagePath[separatorIndex+1:]
	}
	return packageName + qualifiedNameSeparatorConstant + identity.Name
}

// QualifiedNameFromDescription shortens a fully qualified method description
// such as "org.example.LoginTest.testLogin()" to "LoginTest.testLogin".
// Descriptions that do not have that shape are returned unchanged.
func QualifiedNameFromDescription(description string) string {
	submatches := methodDescriptionExpression.FindStringSubmatch(description)
	if len(submatches) < 2 {
		return description
	}
	return submatches[1]
}

// TestResult describes a test at the moment a listener is notified.
type TestResult struct {
	Identity Identity
	Status   Status
	Elapsed  time.Duration
}
