package server

// Server bundles the entity-specific HTTP servers; there is only the
// review server for now.
type Server struct {
	ReviewServer
}

func NewServer(reviewServer ReviewServer) Server {
	return Server{
		ReviewServer: reviewServer,
	}
}
