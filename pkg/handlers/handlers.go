package handlers

import (
	"github.com/abcstfabu/kapparot-online/pkg/api"
	"github.com/abcstfabu/kapparot-online/pkg/handlers/donations"
	"github.com/abcstfabu/kapparot-online/pkg/handlers/pages"
)

// ApiHandler implements the generated server interface.
// Pages drive the donation flow; donations serve the spreadsheet logging API.
type ApiHandler struct {
	*pages.PagesHandler
	*donations.DonationsHandler
}

// NewApiHandler creates a new ApiHandler from its page and API halves.
func NewApiHandler(p *pages.PagesHandler, d *donations.DonationsHandler) *ApiHandler {
	return &ApiHandler{PagesHandler: p, DonationsHandler: d}
}

// Make sure we conform to the interface
var _ api.ServerInterface = (*ApiHandler)(nil)
