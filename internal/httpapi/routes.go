package httpapi

// Server routes the client calls. All take a JSON body.
const (
	RoutePropose        = "/api/propose"
	RouteProposeDelete  = "/api/propose_delete"
	RouteAcceptProposal = "/api/accept_proposal"
	RouteRejectProposal = "/api/reject_proposal"
	RouteAcceptDelete   = "/api/accept_delete"
	RouteRejectDelete   = "/api/reject_delete"
	RouteLeave          = "/api/leave"
)
