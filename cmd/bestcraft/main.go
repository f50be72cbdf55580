package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const usage = "Usage: bestcraft [health|version|settings|catalog|datasource|export|set clé=valeur...|import fichier|-]"

func main() {
	baseURL := flag.String("server", envOr("BESTCRAFT_SERVER_URL", "http://127.0.0.1:8080"), "URL du serveur (ex: http://127.0.0.1:8080)")
	timeout := flag.Duration("timeout", 10*time.Second, "Timeout HTTP")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	client := &http.Client{Timeout: *timeout}
	api := strings.TrimRight(*baseURL, "/") + "/api/v1"

	switch args[0] {
	case "health":
		run(client, http.MethodGet, api+"/health", nil)
	case "version":
		run(client, http.MethodGet, api+"/version", nil)
	case "settings":
		run(client, http.MethodGet, api+"/settings", nil)
	case "catalog":
		run(client, http.MethodGet, api+"/catalog", nil)
	case "datasource":
		run(client, http.MethodGet, api+"/datasource", nil)
	case "export":
		run(client, http.MethodGet, api+"/settings/export", nil)
	case "set":
		body, err := patchBody(args[1:])
		if err != nil {
			fmt.Fprintln(os.Stderr, "Erreur:", err)
			os.Exit(2)
		}
		run(client, http.MethodPatch, api+"/settings", body)
	case "import":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(2)
		}
		body, err := readInput(args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, "Erreur:", err)
			os.Exit(1)
		}
		run(client, http.MethodPut, api+"/settings", body)
	default:
		fmt.Fprintln(os.Stderr, "Commande inconnue:", args[0])
		os.Exit(2)
	}
}

// patchBody transforme language=en-US dataSource=xivapi en objet JSON.
func patchBody(pairs []string) ([]byte, error) {
	if len(pairs) == 0 {
		return nil, fmt.Errorf("aucun champ à modifier")
	}
	patch := map[string]string{}
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("argument invalide %q (attendu clé=valeur)", p)
		}
		switch k {
		case "language", "dataSource", "dataSourceLang":
		default:
			return nil, fmt.Errorf("champ inconnu %q", k)
		}
		patch[k] = v
	}
	return json.Marshal(patch)
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func run(client *http.Client, method, url string, body []byte) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, url, rd)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Erreur:", err)
		os.Exit(1)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Erreur:", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	var pretty any
	if err := json.Unmarshal(b, &pretty); err == nil {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(pretty)
		if resp.StatusCode >= 400 {
			os.Exit(1)
		}
		return
	}

	os.Stdout.Write(b)
	os.Stdout.Write([]byte("\n"))
	if resp.StatusCode >= 400 {
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
