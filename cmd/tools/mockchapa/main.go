// mockchapa is a local stand-in for the Chapa transaction API so the app
// can be exercised without real credentials. Point CHAPA_BASE_URL at it.
//
//	go run ./cmd/tools/mockchapa -addr :9090 -outcome success
package main

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
)

type initRequest struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
	Email    string `json:"email"`
	TxRef    string `json:"tx_ref"`
}

type transaction struct {
	TxRef    string
	Amount   string
	Currency string
}

func main() {
	addr := flag.String("addr", ":9090", "Listen address")
	outcome := flag.String("outcome", "success", "Verification outcome for every transaction (success or failed)")
	flag.Parse()

	if *outcome != "success" && *outcome != "failed" {
		fmt.Fprintln(os.Stderr, "outcome must be success or failed")
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	var mu sync.Mutex
	txs := map[string]transaction{} // keyed by the id we hand back

	mux := http.NewServeMux()

	mux.HandleFunc("POST /transaction/initialize", func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Invalid API Key"})
			return
		}
		var in initRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Invalid payload"})
			return
		}

		id := "mock-" + randomHex(8)
		mu.Lock()
		txs[id] = transaction{TxRef: in.TxRef, Amount: in.Amount, Currency: in.Currency}
		mu.Unlock()

		logger.Info("transaction initialized", "id", id, "tx_ref", in.TxRef, "amount", in.Amount)
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  "success",
			"message": "Hosted Link",
			"data": map[string]any{
				"reference":    id,
				"checkout_url": "http://localhost" + *addr + "/checkout/" + id,
			},
		})
	})

	mux.HandleFunc("GET /transaction/verify/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		mu.Lock()
		_, ok := txs[id]
		mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusOK, map[string]any{
				"status":  "failed",
				"message": "Transaction reference not found",
				"data":    map[string]any{"status": "failed"},
			})
			return
		}

		logger.Info("transaction verified", "id", id, "outcome", *outcome)
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  "success",
			"message": "Payment details",
			"data": map[string]any{
				"status":         *outcome,
				"payment_method": "mock",
			},
		})
	})

	mux.HandleFunc("GET /checkout/{id}", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "mock checkout page for %s (outcome: %s)\n", r.PathValue("id"), *outcome)
	})

	logger.Info("mock gateway listening", "addr", *addr, "outcome", *outcome)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func randomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
