// Serves the example site with a small API mounted behind it.
// Run with DOCSITE_DEV=1 for live reload while editing content.
package main

import (
	"fmt"
	"log"
	"net/http"

	docsite "github.com/modernist/Akkatecture-Documentation"
)

func main() {
	site, err := docsite.New("site.yaml")
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = site.Stop() }()

	api := http.NewServeMux()
	api.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})

	log.Printf("listening on %s", site.Addr())
	log.Fatal(http.ListenAndServe(site.Addr(), site.Wrap(api)))
}
