// Package core contains the BitFlow SDK domain records, configuration, and
// error taxonomy. The client and webhook packages depend on this package;
// core must not depend on transport- or handler-specific code.
package core
