// Package cli is the interactive FoodLink terminal client.
//
// App wires configuration, the local token database, the HTTP client, the
// session manager and the API services, then runs a read-eval-print loop.
// On start the session is restored from the persisted access token, so a
// user who logged in earlier lands directly in the authenticated view.
//
// Commands fall into two groups:
//   - public: help, register, login, exit | quit
//   - authenticated: whoami, logout, dashboard, donations, donate, requests,
//     request, approve <id>, complete <id>, stats, heatmap
//
// Authenticated commands typed while logged out print "login required".
// donate and approve are donor actions; request and complete are NGO
// actions.
package cli
