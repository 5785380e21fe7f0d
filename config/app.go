package config

// BookService holds the Book-domain service configuration.
type BookService struct {
	Port     string `env:"BOOK_PORT" default:"3003"`
	MongoURI string `env:"MONGO_URI,required"`
	MongoDB  string `env:"MONGO_DB" default:"bookworm_book"`
	Env      string `env:"APP_ENV" default:"dev"`
}

// RequestService holds the Request-domain service configuration.
// Collaborator endpoints are injected here; orchestration code never
// sees a concrete address.
type RequestService struct {
	Port           string `env:"REQUEST_PORT" default:"3004"`
	MongoURI       string `env:"MONGO_URI,required"`
	MongoDB        string `env:"MONGO_DB" default:"bookworm_request"`
	BookServiceURL string `env:"BOOK_SERVICE_URL" default:"http://localhost:3003"`
	UserServiceURL string `env:"USER_SERVICE_URL" default:"http://localhost:3001"`
	Env            string `env:"APP_ENV" default:"dev"`
}
