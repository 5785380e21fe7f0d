package config

import (
	"log/slog"
	"os"
)

func LoadBookService() BookService {
	return BookService{
		Port:     getenv("BOOK_PORT", "3003"),
		MongoURI: must("MONGO_URI"),
		MongoDB:  getenv("MONGO_DB", "bookworm_book"),
		Env:      getenv("APP_ENV", "dev"),
	}
}

func LoadRequestService() RequestService {
	return RequestService{
		Port:           getenv("REQUEST_PORT", "3004"),
		MongoURI:       must("MONGO_URI"),
		MongoDB:        getenv("MONGO_DB", "bookworm_request"),
		BookServiceURL: getenv("BOOK_SERVICE_URL", "http://localhost:3003"),
		UserServiceURL: getenv("USER_SERVICE_URL", "http://localhost:3001"),
		Env:            getenv("APP_ENV", "dev"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		slog.Error("required env missing", "key", k)
		panic("missing env " + k)
	}
	return v
}
