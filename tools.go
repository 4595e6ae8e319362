//go:build tools

package tools

import (
	_ "github.com/vektra/mockery/v2"
)
