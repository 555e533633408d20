package server

// Server объединяет специфичные HTTP сервера. Сейчас он один.
type Server struct {
	DashboardServer
}

func NewServer(
	dashboardServer DashboardServer,
) Server {
	return Server{
		DashboardServer: dashboardServer,
	}
}
