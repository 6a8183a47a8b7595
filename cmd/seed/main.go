package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

var base = func() string {
	if v := os.Getenv("BASE_URL"); v != "" {
		return v
	}
	return "http://localhost:8080"
}()

func main() {
	gofakeit.Seed(time.Now().UnixNano())

	email := gofakeit.Email()
	password := "123456"

	// 1. Register a user. The confirmation email cannot be clicked from here,
	// so seeding expects CONFIRM_TOKEN_MINUTES-style dev setups where the
	// confirm link is read from the mail provider's sandbox, or a user that
	// is already confirmed.
	postJSON("/register", map[string]string{"email": email, "password": password}, "")
	log.Printf("registered %s — confirm it, then re-run with SEED_EMAIL/SEED_PASSWORD", email)

	if e := os.Getenv("SEED_EMAIL"); e != "" {
		email = e
		password = os.Getenv("SEED_PASSWORD")
	} else {
		return
	}

	// 2. Login and retrieve the bearer token.
	var tok struct {
		AccessToken string `json:"access_token"`
	}
	body := postJSON("/token", map[string]string{"email": email, "password": password}, "")
	if err := json.Unmarshal(body, &tok); err != nil || tok.AccessToken == "" {
		log.Fatal("could not obtain token, aborting seeding process")
	}

	// 3. Create posts with comments and likes.
	for i := 0; i < 10; i++ {
		var p struct {
			ID uint64 `json:"id"`
		}
		body := postJSON("/post", map[string]string{"body": gofakeit.Sentence(12)}, tok.AccessToken)
		if err := json.Unmarshal(body, &p); err != nil || p.ID == 0 {
			log.Fatal("create post failed")
		}
		for j := 0; j < gofakeit.Number(0, 4); j++ {
			postJSON("/comment", map[string]any{"body": gofakeit.Sentence(8), "post_id": p.ID}, tok.AccessToken)
		}
		for j := 0; j < gofakeit.Number(0, 6); j++ {
			postJSON("/like", map[string]any{"post_id": p.ID}, tok.AccessToken)
		}
	}
	log.Println("seeding complete")
}

func postJSON(path string, payload any, token string) []byte {
	b, _ := json.Marshal(payload)
	req, err := http.NewRequest(http.MethodPost, base+path, bytes.NewReader(b))
	if err != nil {
		log.Fatalf("POST %s: %v", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	fmt.Printf("POST %s -> %d %s\n", path, resp.StatusCode, buf.String())
	return buf.Bytes()
}
