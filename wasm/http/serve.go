package main

import (
	"flag"
	"log"
	"mime"
	"net/http"
	"path/filepath"
)

func main() {
	addr := flag.String("a", "localhost:5000", "address to serve (host:port)")
	root := flag.String("r", ".", "directory holding index.html, main.wasm and textures/")
	flag.Parse()

	dir, err := filepath.Abs(*root)
	if err != nil {
		log.Fatalln(err)
	}
	// Browsers refuse to stream-compile wasm served with another type.
	if err := mime.AddExtensionType(".wasm", "application/wasm"); err != nil {
		log.Fatalln(err)
	}

	files := http.FileServer(http.Dir(dir))
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Print(r.RemoteAddr + " " + r.Method + " " + r.URL.String())
		w.Header().Set("Cache-Control", "no-cache")
		files.ServeHTTP(w, r)
	})

	log.Printf("serving %s on %s", dir, *addr)
	if err := http.ListenAndServe(*addr, handler); err != nil {
		log.Fatalln(err)
	}
}
