package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/electromart/storefrontbackend/lib/mylog"
	"github.com/electromart/storefrontbackend/lib/mymailer"
	"github.com/electromart/storefrontbackend/lib/mypublisher"
	"github.com/electromart/storefrontbackend/lib/mypubsub"
	"github.com/electromart/storefrontbackend/lib/myqueue"
	"github.com/electromart/storefrontbackend/lib/mystore"
	"github.com/electromart/storefrontbackend/lib/mytime"
	"github.com/electromart/storefrontbackend/lib/myuuid"
	"github.com/electromart/storefrontbackend/lib/myvault"
	"github.com/electromart/storefrontbackend/services/auth"
	"github.com/electromart/storefrontbackend/services/blog"
	"github.com/electromart/storefrontbackend/services/cart"
	"github.com/electromart/storefrontbackend/services/catalog"
	"github.com/electromart/storefrontbackend/services/checkout"
	"github.com/electromart/storefrontbackend/services/contact"
	"github.com/electromart/storefrontbackend/services/testimonials"
)

func main() {
	c := context.Background()

	router := mux.NewRouter()
	nower := mytime.RealNower{}
	uuider := myuuid.RealUUIDer{}

	pub, publisherCleanup := createPublisher(c, router, nower)
	defer publisherCleanup()

	vault, vaultCleanup, err := myvault.New(c)
	if err != nil {
		log.Fatalf("Error creating vault: %s", err)
	}
	defer vaultCleanup()
	mailer := createMailer(c, vault)

	merchantEmail := getenv("MERCHANT_EMAIL", "orders@electromart.example")

	snapshotStore, snapshotStoreCleanup, err := mystore.New[cart.SnapshotRecord](c)
	if err != nil {
		log.Fatalf("Error creating cart snapshot store: %s", err)
	}
	defer snapshotStoreCleanup()

	cartService := cart.NewService(snapshotStore, uuider, mylog.New("cart"))
	cartService.RegisterEndpoints(c, router)

	registerCatalogService(c, router, nower, uuider, pub)
	registerBlogService(c, router, nower, uuider)
	registerTestimonialService(c, router, nower, uuider)
	registerCheckoutService(c, router, snapshotStore, nower, uuider, mailer, pub, merchantEmail)
	registerContactService(c, router, nower, uuider, mailer, merchantEmail)
	registerAuthService(c, router, nower, uuider)

	startWebServerBlocking(router)
}

func createPublisher(c context.Context, router *mux.Router, nower mytime.Nower) (mypublisher.Publisher, func()) {
	pubsub, pubsubCleanup, err := mypubsub.New(c)
	if err != nil {
		log.Fatalf("Error creating pubsub: %s", err)
	}

	queue, queueCleanup, err := myqueue.New(c)
	if err != nil {
		log.Fatalf("Error creating task queue: %s", err)
	}

	pub, publisherCleanup, err := mypublisher.New(c, pubsub, queue, nower)
	if err != nil {
		log.Fatalf("Error creating publisher: %s", err)
	}
	pub.RegisterEndpoints(c, router)

	return pub, func() {
		publisherCleanup()
		queueCleanup()
		pubsubCleanup()
	}
}

// createMailer prefers an api-key from the environment, then from the vault,
// and falls back to a log-only mailer for local development.
func createMailer(c context.Context, vault myvault.Vault) mymailer.Mailer {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey != "" {
		// keep the key around for boots without the env var
		err := vault.Put(c, myvault.MailAPIKey, myvault.Secret{Value: apiKey})
		if err != nil {
			log.Fatalf("Error storing mail api-key in vault: %s", err)
		}
	} else {
		secret, found, err := vault.Get(c, myvault.MailAPIKey)
		if err != nil {
			log.Fatalf("Error reading mail api-key from vault: %s", err)
		}
		if found {
			apiKey = secret.Value
		}
	}
	if apiKey == "" {
		log.Printf("No mail api-key configured: outbound mail will only be logged")
		return mymailer.NewFakeMailer()
	}

	return mymailer.NewSendgridMailer(apiKey)
}

func registerCatalogService(c context.Context, router *mux.Router, nower mytime.Nower, uuider myuuid.UUIDer, pub mypublisher.Publisher) {
	productStore, _, err := mystore.New[catalog.Product](c)
	if err != nil {
		log.Fatalf("Error creating product store: %s", err)
	}
	categoryStore, _, err := mystore.New[catalog.Category](c)
	if err != nil {
		log.Fatalf("Error creating category store: %s", err)
	}
	subcategoryStore, _, err := mystore.New[catalog.Subcategory](c)
	if err != nil {
		log.Fatalf("Error creating subcategory store: %s", err)
	}

	catalogService := catalog.NewService(productStore, categoryStore, subcategoryStore, nower, uuider, pub, mylog.New("catalog"))
	err = catalogService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering catalog service: %s", err)
	}
}

func registerBlogService(c context.Context, router *mux.Router, nower mytime.Nower, uuider myuuid.UUIDer) {
	blogStore, _, err := mystore.New[blog.Blog](c)
	if err != nil {
		log.Fatalf("Error creating blog store: %s", err)
	}
	imageStore, _, err := mystore.New[blog.BlogImage](c)
	if err != nil {
		log.Fatalf("Error creating blog image store: %s", err)
	}

	blogService := blog.NewService(blogStore, imageStore, nower, uuider, mylog.New("blog"))
	blogService.RegisterEndpoints(c, router)
}

func registerTestimonialService(c context.Context, router *mux.Router, nower mytime.Nower, uuider myuuid.UUIDer) {
	testimonialStore, _, err := mystore.New[testimonials.Testimonial](c)
	if err != nil {
		log.Fatalf("Error creating testimonial store: %s", err)
	}

	testimonialService := testimonials.NewService(testimonialStore, nower, uuider, mylog.New("testimonials"))
	testimonialService.RegisterEndpoints(c, router)
}

func registerCheckoutService(c context.Context, router *mux.Router, snapshotStore mystore.Store[cart.SnapshotRecord], nower mytime.Nower, uuider myuuid.UUIDer, mailer mymailer.Mailer, pub mypublisher.Publisher, merchantEmail string) {
	orderStore, _, err := mystore.New[checkout.Order](c)
	if err != nil {
		log.Fatalf("Error creating order store: %s", err)
	}

	checkoutService := checkout.NewService(orderStore, snapshotStore, nower, uuider, mailer, pub, merchantEmail, mylog.New("checkout"))
	err = checkoutService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering checkout service: %s", err)
	}
}

func registerContactService(c context.Context, router *mux.Router, nower mytime.Nower, uuider myuuid.UUIDer, mailer mymailer.Mailer, merchantEmail string) {
	messageStore, _, err := mystore.New[contact.ContactMessage](c)
	if err != nil {
		log.Fatalf("Error creating contact message store: %s", err)
	}

	contactService := contact.NewService(messageStore, nower, uuider, mailer, merchantEmail, mylog.New("contact"))
	contactService.RegisterEndpoints(c, router)
}

func registerAuthService(c context.Context, router *mux.Router, nower mytime.Nower, uuider myuuid.UUIDer) {
	credentialsStore, _, err := mystore.New[auth.Credentials](c)
	if err != nil {
		log.Fatalf("Error creating credentials store: %s", err)
	}
	sessionStore, _, err := mystore.New[auth.Session](c)
	if err != nil {
		log.Fatalf("Error creating session store: %s", err)
	}

	authService := auth.NewService(credentialsStore, sessionStore, nower, uuider,
		getenv("ADMIN_USERNAME", "admin"), getenv("ADMIN_PASSWORD", "change-me-on-first-login"), mylog.New("auth"))
	err = authService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering auth service: %s", err)
	}
}

func getenv(name string, fallback string) string {
	value := os.Getenv(name)
	if value == "" {
		return fallback
	}
	return value
}

func startWebServerBlocking(router *mux.Router) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting webserver on port %s (try http://localhost:%s)", port, port)
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), router)
	if err != nil {
		log.Fatalf("Error starting webserver on port %s: %s", port, err)
	}
}
