package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	cartapp "github.com/dwikikusuma/cart-sync/internal/cart/app"
	"github.com/dwikikusuma/cart-sync/internal/cart/infra/storage"
	"github.com/dwikikusuma/cart-sync/internal/cart/store"
	cataloghttp "github.com/dwikikusuma/cart-sync/internal/catalog/httpapi"
	checkoutapp "github.com/dwikikusuma/cart-sync/internal/checkout/app"
	checkoutdomain "github.com/dwikikusuma/cart-sync/internal/checkout/domain"
	"github.com/dwikikusuma/cart-sync/internal/checkout/infra/adapter"
	checkouthttp "github.com/dwikikusuma/cart-sync/internal/checkout/infra/httpapi"
	"github.com/dwikikusuma/cart-sync/pkg/config"
	"github.com/dwikikusuma/cart-sync/pkg/logger"
	"github.com/dwikikusuma/cart-sync/pkg/shutdown"
)

// maxQuantity is a UI policy, not a storage invariant.
const maxQuantity = 100

func main() {
	addRef := flag.String("add", "", "add to a line: id:color:qty (quantities sum)")
	setRef := flag.String("set", "", "overwrite a line: id:color:qty")
	deleteRef := flag.String("delete", "", "delete a line: id:color")
	resolveRef := flag.String("resolve", "", "resolve a line's product: id:color")
	list := flag.Bool("list", false, "print lines and totals")
	order := flag.Bool("order", false, "place an order for the whole cart")
	firstName := flag.String("first", "", "contact first name")
	lastName := flag.String("last", "", "contact last name")
	address := flag.String("addr", "", "contact address")
	city := flag.String("city", "", "contact city")
	email := flag.String("email", "", "contact email")
	flag.Parse()

	cfg := config.Load()
	log := logger.New(logger.Options{
		Service: "cart",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	root := context.Background()
	ctx, cancel := shutdown.WithSignals(root)
	defer cancel()

	timeout := time.Duration(cfg.HTTPTimeout) * time.Second
	resolver := cataloghttp.NewClient(cfg.CatalogURL, timeout)

	lines, err := store.NewLineStore(storage.NewFileStore(cfg.CartFile))
	if err != nil {
		log.Error("open cart", slog.Any("err", err))
		os.Exit(1)
	}
	cart := cartapp.New(lines, resolver, cartapp.WithLogger(log))

	switch {
	case *addRef != "":
		err = addLine(cart, *addRef)
	case *setRef != "":
		err = setLine(cart, *setRef)
	case *deleteRef != "":
		err = deleteLine(cart, *deleteRef)
	case *resolveRef != "":
		err = resolveLine(ctx, cart, *resolveRef)
	case *order:
		contact := checkoutdomain.Contact{
			FirstName: *firstName,
			LastName:  *lastName,
			Address:   *address,
			City:      *city,
			Email:     *email,
		}
		err = placeOrder(ctx, cart, contact, cfg.CatalogURL, timeout)
	case *list:
		printCart(cart)
	default:
		flag.Usage()
	}

	if err != nil {
		log.Error("cart action failed", slog.Any("err", err))
		os.Exit(1)
	}
}

// addLine follows the cart page policy: quantities for an existing line sum,
// capped at the UI bound.
func addLine(cart *cartapp.Service, ref string) error {
	id, color, qty, err := parseLineRef(ref, true)
	if err != nil {
		return err
	}

	if existing, ok, err := cart.GetLine(id, color); err != nil {
		return err
	} else if ok {
		qty += existing.Quantity
	}
	if qty > maxQuantity {
		qty = maxQuantity
	}

	_, err = cart.SetLine(cartapp.LineInput{ID: id, Color: color, Quantity: qty})
	return err
}

func setLine(cart *cartapp.Service, ref string) error {
	id, color, qty, err := parseLineRef(ref, true)
	if err != nil {
		return err
	}
	if qty > maxQuantity {
		qty = maxQuantity
	}

	_, err = cart.SetLine(cartapp.LineInput{ID: id, Color: color, Quantity: qty})
	return err
}

func deleteLine(cart *cartapp.Service, ref string) error {
	id, color, _, err := parseLineRef(ref, false)
	if err != nil {
		return err
	}
	return cart.DeleteLine(id, color)
}

func resolveLine(ctx context.Context, cart *cartapp.Service, ref string) error {
	id, color, _, err := parseLineRef(ref, false)
	if err != nil {
		return err
	}

	line, err := cart.ResolveLine(ctx, id, color)
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s) x%d — %s\n", line.Product.Name, line.Color, line.Quantity, line.Product.Price)
	return nil
}

func placeOrder(ctx context.Context, cart *cartapp.Service, contact checkoutdomain.Contact, baseURL string, timeout time.Duration) error {
	svc := checkoutapp.NewService(
		adapter.NewCartServiceReader(cart),
		checkouthttp.NewOrderClient(baseURL, timeout),
		0,
	)

	placed, err := svc.PlaceOrder(ctx, contact)
	if err != nil {
		return err
	}
	fmt.Printf("order placed: %s (%d items)\n", placed.OrderID, len(placed.ProductIDs))
	return nil
}

func printCart(cart *cartapp.Service) {
	for _, line := range cart.Lines() {
		name := "(unresolved)"
		price := "-"
		if line.HasProduct() {
			name = line.Product.Name
			price = line.Product.Price.String()
		}
		fmt.Printf("%s / %s x%d  %s  %s\n", line.ID, line.Color, line.Quantity, name, price)
	}
	fmt.Printf("total quantity: %d\n", cart.TotalQuantity())
	fmt.Printf("total price:    %s\n", cart.TotalPrice())
}

// parseLineRef parses "id:color" or "id:color:qty".
func parseLineRef(ref string, wantQty bool) (id, color string, qty int64, err error) {
	parts := strings.Split(ref, ":")
	if wantQty {
		if len(parts) != 3 {
			return "", "", 0, fmt.Errorf("expected id:color:qty, got %q", ref)
		}
		qty, err = strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			return "", "", 0, fmt.Errorf("bad quantity in %q: %w", ref, err)
		}
	} else if len(parts) != 2 {
		return "", "", 0, fmt.Errorf("expected id:color, got %q", ref)
	}
	return parts[0], parts[1], qty, nil
}
