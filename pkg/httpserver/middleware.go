package httpserver

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sagardabas0007/private-markets/pkg/walletauth"
)

// Headers carrying the wallet ownership proof. The client signs
// X-Wallet-Message (which must name the wallet being queried) and sends
// the signature alongside; authentication happens here, not in the
// ledger.
const (
	HeaderWalletMessage   = "X-Wallet-Message"
	HeaderWalletSignature = "X-Wallet-Signature"
)

// requireWalletSignature gates wallet-scoped routes on a signed-message
// proof that the caller controls the wallet in the path.
func requireWalletSignature(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			address := chi.URLParam(r, "address")
			message := r.Header.Get(HeaderWalletMessage)
			signature := r.Header.Get(HeaderWalletSignature)

			if message == "" || signature == "" {
				writeError(w, "wallet signature headers required", http.StatusUnauthorized)
				return
			}

			// The signed message must name the wallet so a signature
			// captured for one wallet cannot unlock another.
			if !strings.Contains(message, address) {
				writeError(w, "signed message does not reference wallet", http.StatusUnauthorized)
				return
			}

			if !walletauth.Verify(address, message, signature) {
				logger.Warn("wallet-auth-failed", zap.String("address", address))
				writeError(w, "wallet not authorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// requireAdminToken gates privileged routes on a bearer token. An empty
// configured token disables the route.
func requireAdminToken(token string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				writeError(w, "administrative endpoints disabled", http.StatusForbidden)
				return
			}

			auth := r.Header.Get("Authorization")
			if auth != "Bearer "+token {
				logger.Warn("admin-auth-failed", zap.String("path", r.URL.Path))
				writeError(w, "invalid admin token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
