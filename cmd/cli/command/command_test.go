package command

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"carhub/cmd/cli/authentication"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

// fakeAPI answers like the CarHub API for a tiny fixed catalog
func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, status int, body string) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}

	mux.HandleFunc("GET /cars/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `[{"id":1,"make":"FIAT","model":"500","avg_rating":4.7,"rates_number":3}]`)
	})
	mux.HandleFunc("GET /cars/{id}/", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "1" {
			writeJSON(w, http.StatusNotFound, `{"error":"car not found"}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"id":1,"make":"FIAT","model":"500","avg_rating":4.7,"rates_number":3}`)
	})
	mux.HandleFunc("POST /cars/", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in["make"] != "fiat" {
			writeJSON(w, http.StatusBadRequest, `["This car make doesn't exist"]`)
			return
		}
		writeJSON(w, http.StatusCreated, `{"id":2,"make":"FIAT","model":"`+in["model"]+`","avg_rating":0,"rates_number":0}`)
	})
	mux.HandleFunc("DELETE /cars/{id}/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("POST /rate/", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]int
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in["rating"] > 5 {
			writeJSON(w, http.StatusBadRequest, `{"rating":["Ensure this value is less than or equal to 5."]}`)
			return
		}
		writeJSON(w, http.StatusCreated, `{"id":7,"car_id":1,"rating":4}`)
	})
	mux.HandleFunc("GET /popular/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `[
			{"id":1,"make":"FIAT","model":"500","avg_rating":4.7,"rates_number":3},
			{"id":2,"make":"OPEL","model":"Astra","avg_rating":2,"rates_number":1}]`)
	})
	mux.HandleFunc("POST /cars_by_make/", func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Make   string `json:"make"`
			Create bool   `json:"create"`
		}
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in.Create {
			writeJSON(w, http.StatusCreated, `[{"id":3,"make":"Fiat","model":"Ducato","avg_rating":0,"rates_number":0}]`)
			return
		}
		writeJSON(w, http.StatusOK, `[{"make":"Fiat","model":"500"},{"make":"Fiat","model":"Ducato"}]`)
	})
	mux.HandleFunc("POST /admin/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"access_token":"tok","token_type":"Bearer","expires_in":900}`)
	})
	mux.HandleFunc("POST /admin/cars/import-by-make", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			writeJSON(w, http.StatusUnauthorized, `{"error":"invalid token"}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"makes":["FIAT"],"created":[{"id":4,"make":"Fiat","model":"Panda","avg_rating":0,"rates_number":0}]}`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// resetFlags undoes flag values left behind by a previous Execute
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func run(t *testing.T, srv *httptest.Server, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--api", srv.URL}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCarsCommands(t *testing.T) {
	srv := fakeAPI(t)

	out, err := run(t, srv, "cars", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "FIAT")
	assert.Contains(t, out, "4.7")

	out, err = run(t, srv, "cars", "get", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Model:    500")
	assert.Contains(t, out, "★★★★★ 4.7")

	_, err = run(t, srv, "cars", "get", "9")
	assert.ErrorContains(t, err, "car not found")

	_, err = run(t, srv, "cars", "get", "abc")
	assert.ErrorContains(t, err, "invalid car ID")

	out, err = run(t, srv, "cars", "create", "--make", "fiat", "--model", "Ducato")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Car created: FIAT Ducato (ID 2)")

	_, err = run(t, srv, "cars", "create", "--make", "nope", "--model", "X")
	assert.ErrorContains(t, err, "This car make doesn't exist")

	out, err = run(t, srv, "cars", "delete", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Car 2 deleted")
}

func TestRateAndPopular(t *testing.T) {
	srv := fakeAPI(t)

	out, err := run(t, srv, "rate", "1", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "Your Rating: 4/5")

	_, err = run(t, srv, "rate", "1", "9")
	assert.ErrorContains(t, err, "less than or equal to 5")

	_, err = run(t, srv, "rate", "1", "four")
	assert.ErrorContains(t, err, "invalid rating")

	out, err = run(t, srv, "popular", "--top", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "FIAT")
	assert.NotContains(t, out, "OPEL")
}

func TestImportCommand(t *testing.T) {
	srv := fakeAPI(t)
	keyring.MockInit()

	out, err := run(t, srv, "import", "fiat", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Ducato")

	out, err = run(t, srv, "import", "fiat")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ 1 new cars")

	_, err = run(t, srv, "import")
	assert.ErrorContains(t, err, "a make is required")

	_, err = run(t, srv, "import", "--selected", "1")
	assert.ErrorIs(t, err, authentication.ErrNotLoggedIn)

	out, err = run(t, srv, "auth", "login", "-u", "admin", "-p", "hunter22")
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully logged in")

	out, err = run(t, srv, "import", "--selected", "1,2")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported makes: FIAT")
	assert.Contains(t, out, "Panda")

	_, err = run(t, srv, "import", "fiat", "--selected", "1")
	assert.ErrorContains(t, err, "not both")

	out, err = run(t, srv, "auth", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "logged out")

	_, err = run(t, srv, "import", "--selected", "1")
	assert.ErrorIs(t, err, authentication.ErrNotLoggedIn)
}
