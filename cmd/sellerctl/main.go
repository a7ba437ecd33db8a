package main

import (
	"bufio"
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"flowy-seller/internal/api"
	"flowy-seller/internal/collection"
	"flowy-seller/internal/config"
	"flowy-seller/internal/flow"
	"flowy-seller/internal/model"
	"flowy-seller/internal/session"

	"github.com/rs/zerolog"
)

const usage = `usage: sellerctl <command> [flags]

commands:
  listings        list your flower listings
  requests        list open custom requests
  orders          list your orders
  bid             place a bid on a custom request
  pickup          schedule a pickup for an order
  create-listing  create a new flower listing
  update-listing  update an existing flower listing
  delete-listing  delete a flower listing

The seller identity token is read from FLOWY_AUTH_TOKEN.`

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	ctx := context.Background()

	gateway := api.NewClient(
		cfg.API.BaseURL,
		time.Duration(cfg.API.TimeoutSeconds)*time.Second,
		cfg.API.Lang,
		logger,
	)

	sess, err := session.Establish(ctx, gateway, cfg.Auth.Token, logger)
	if err != nil {
		if model.IsNotFound(err) {
			return fmt.Errorf("seller not found for the given token")
		}
		return err
	}

	switch os.Args[1] {
	case "listings":
		return showListings(ctx, gateway, sess, logger)
	case "requests":
		return showRequests(ctx, gateway, logger)
	case "orders":
		return showOrders(ctx, gateway, sess, logger)
	case "bid":
		return placeBid(ctx, gateway, sess, logger, os.Args[2:])
	case "pickup":
		return schedulePickup(ctx, gateway, sess, logger, os.Args[2:])
	case "create-listing":
		return createListing(ctx, gateway, sess, logger, os.Args[2:])
	case "update-listing":
		return updateListing(ctx, gateway, sess, logger, os.Args[2:])
	case "delete-listing":
		return deleteListing(ctx, gateway, sess, logger, os.Args[2:])
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
		return nil
	}
}

func showListings(ctx context.Context, gateway api.Gateway, sess *session.Session, logger zerolog.Logger) error {
	listings := collection.Flowers(gateway, sess.SellerID(), logger)
	if err := listings.Start(ctx); err != nil {
		return err
	}

	for _, f := range listings.Items() {
		fmt.Printf("%s  %-24s  %8.2f  %-8s  %s\n",
			f.ID, f.Name, f.Price, f.Status, strings.Join(f.Items, ", "))
	}
	return nil
}

func showRequests(ctx context.Context, gateway api.Gateway, logger zerolog.Logger) error {
	requests := collection.CustomRequests(gateway, logger)
	if err := requests.Start(ctx); err != nil {
		return err
	}

	for _, r := range requests.Items() {
		fmt.Printf("%s  %-16s  %-10s  %s\n", r.ID, r.BuyerName, r.Status, r.Prompt)
	}
	return nil
}

func showOrders(ctx context.Context, gateway api.Gateway, sess *session.Session, logger zerolog.Logger) error {
	orders := collection.Orders(gateway, sess.SellerID(), logger)
	if err := orders.Start(ctx); err != nil {
		return err
	}

	for _, o := range orders.Items() {
		pickup := "no pickup scheduled"
		if o.HasPickup() {
			pickup = "pickup " + o.PickupTime.Local().Format("2006-01-02 15:04")
		}
		fmt.Printf("%s  %-16s  %8.2f  %-10s  %s\n",
			o.ID, o.BuyerName, o.Price, o.StatusLabel(), pickup)
	}
	return nil
}

func placeBid(ctx context.Context, gateway api.Gateway, sess *session.Session, logger zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("bid", flag.ExitOnError)
	requestID := fs.String("request", "", "Custom request id to bid on")
	price := fs.String("price", "", "Bid price")
	fs.Parse(args)

	if *requestID == "" {
		fs.PrintDefaults()
		return fmt.Errorf("request id is required")
	}

	requests := collection.CustomRequests(gateway, logger)
	bidFlow := flow.NewBidFlow(gateway, sess.SellerID(), requests, logger)

	bid, err := bidFlow.Submit(ctx, *requestID, *price)
	if err != nil {
		return err
	}

	fmt.Printf("Bid %s of %.2f placed on request %s.\n", bid.ID, bid.Price, *requestID)
	return nil
}

func schedulePickup(ctx context.Context, gateway api.Gateway, sess *session.Session, logger zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("pickup", flag.ExitOnError)
	orderID := fs.String("order", "", "Order id")
	date := fs.String("date", "", "Pickup date (YYYY-MM-DD)")
	timeOfDay := fs.String("time", "", "Pickup time (HH:MM)")
	fs.Parse(args)

	if *orderID == "" {
		fs.PrintDefaults()
		return fmt.Errorf("order id is required")
	}

	orders := collection.Orders(gateway, sess.SellerID(), logger)
	if err := orders.Start(ctx); err != nil {
		return err
	}

	pickupFlow := flow.NewPickupFlow(gateway, orders, time.Local, logger)

	order, err := pickupFlow.Schedule(ctx, *orderID, *date, *timeOfDay)
	if err != nil {
		return err
	}

	fmt.Printf("Pickup for order %s confirmed at %s.\n",
		order.ID, order.PickupTime.Local().Format("2006-01-02 15:04"))
	return nil
}

func createListing(ctx context.Context, gateway api.Gateway, sess *session.Session, logger zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("create-listing", flag.ExitOnError)
	form, err := parseListingForm(fs, args)
	if err != nil {
		return err
	}

	listings := collection.Flowers(gateway, sess.SellerID(), logger)
	listingFlow := flow.NewListingFlow(gateway, sess.SellerID(), listings, logger)

	flower, err := listingFlow.Create(ctx, form)
	if err != nil {
		return err
	}

	fmt.Printf("Listing %s (%s) created.\n", flower.ID, flower.Name)
	return nil
}

func updateListing(ctx context.Context, gateway api.Gateway, sess *session.Session, logger zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("update-listing", flag.ExitOnError)
	id := fs.String("id", "", "Listing id")
	form, err := parseListingForm(fs, args)
	if err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("listing id is required")
	}

	listings := collection.Flowers(gateway, sess.SellerID(), logger)
	listingFlow := flow.NewListingFlow(gateway, sess.SellerID(), listings, logger)

	flower, err := listingFlow.Update(ctx, *id, form)
	if err != nil {
		return err
	}

	fmt.Printf("Listing %s (%s) updated.\n", flower.ID, flower.Name)
	return nil
}

func deleteListing(ctx context.Context, gateway api.Gateway, sess *session.Session, logger zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("delete-listing", flag.ExitOnError)
	id := fs.String("id", "", "Listing id")
	yes := fs.Bool("yes", false, "Skip the confirmation prompt")
	fs.Parse(args)

	if *id == "" {
		fs.PrintDefaults()
		return fmt.Errorf("listing id is required")
	}

	confirmed := *yes
	if !confirmed {
		fmt.Printf("Delete listing %s? [y/N]: ", *id)
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		confirmed = answer == "y" || answer == "yes"
	}

	listings := collection.Flowers(gateway, sess.SellerID(), logger)
	listingFlow := flow.NewListingFlow(gateway, sess.SellerID(), listings, logger)

	deleted, err := listingFlow.Delete(ctx, *id, confirmed)
	if err != nil {
		return err
	}

	if deleted {
		fmt.Printf("Listing %s deleted.\n", *id)
	} else {
		fmt.Println("Deletion cancelled.")
	}
	return nil
}

// parseListingForm reads the shared create/update flags and loads the image
// attachment from disk.
func parseListingForm(fs *flag.FlagSet, args []string) (flow.ListingForm, error) {
	name := fs.String("name", "", "Listing name")
	description := fs.String("description", "", "Listing description")
	price := fs.String("price", "", "Listing price")
	items := fs.String("items", "", "Comma-separated items used (e.g. rose,tulip)")
	imagePath := fs.String("image", "", "Path to the listing image")
	fs.Parse(args)

	form := flow.ListingForm{
		Name:        *name,
		Description: *description,
		Price:       *price,
	}

	if *items != "" {
		for _, item := range strings.Split(*items, ",") {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				form.Items = append(form.Items, trimmed)
			}
		}
	}

	if *imagePath != "" {
		data, err := os.ReadFile(*imagePath)
		if err != nil {
			return flow.ListingForm{}, fmt.Errorf("failed to read image: %w", err)
		}
		form.Image = &api.ImageAttachment{
			Filename: filepath.Base(*imagePath),
			Reader:   bytes.NewReader(data),
		}
	}

	return form, nil
}
