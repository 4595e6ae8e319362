package storage

import "errors"

// ErrNoSession is returned by backends asked to operate without a session id.
var ErrNoSession = errors.New("no session id")
