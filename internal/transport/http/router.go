package http

import "net/http"

// NewRouter wires every handler into one mux. Everything under /admin goes
// through the gate; the funnel and submission endpoints are public.
func NewRouter(funnel *FunnelHandler, lead *LeadHandler, admin *AdminHandler, feed *FeedHandler, gate *AdminGate) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("POST /api/submit-lead", lead.Submit)

	mux.HandleFunc("POST /api/funnel/session", funnel.Start)
	mux.HandleFunc("GET /api/funnel/session/{id}", funnel.Get)
	mux.HandleFunc("POST /api/funnel/session/{id}/answer", funnel.Answer)
	mux.HandleFunc("POST /api/funnel/session/{id}/back", funnel.Back)
	mux.HandleFunc("POST /api/funnel/session/{id}/contact", funnel.Contact)
	mux.HandleFunc("POST /api/funnel/session/{id}/submit", funnel.Submit)

	adminMux := http.NewServeMux()
	adminMux.HandleFunc("GET /admin", admin.DashboardPage)
	adminMux.HandleFunc("GET /admin/login", admin.LoginPage)
	adminMux.HandleFunc("POST /admin/api/login", admin.Login)
	adminMux.HandleFunc("POST /admin/api/logout", admin.Logout)
	adminMux.HandleFunc("GET /admin/api/leads", admin.Leads)
	adminMux.HandleFunc("GET /admin/api/stats", admin.Stats)
	adminMux.HandleFunc("GET /admin/api/leads/export", admin.Export)
	adminMux.HandleFunc("GET /admin/ws", feed.ServeWS)

	gated := gate.Wrap(adminMux)
	mux.Handle("/admin", gated)
	mux.Handle("/admin/", gated)

	return mux
}
