// tebex-cli — CLI утилита для работы с Tebex Headless API.
//
// Использование:
//
//	./tebex-cli [flags] <command> [args]
//
// Команды:
//
//	webstore                                   метаданные вебстора
//	pages                                      CMS-страницы
//	categories                                 все категории (-packages для вложенных пакетов)
//	category <id>                              одна категория
//	packages                                   все пакеты
//	package <id>                               один пакет
//	basket <ident>                             состояние корзины
//	basket-create <complete_url> <cancel_url>  новая корзина (-username для Minecraft)
//	basket-add <ident> <package> <qty> [type]  добавить пакет
//	basket-gift <ident> <package> <username_id>
//	basket-remove <ident> <package>
//	basket-qty <ident> <package> <qty>
//	apply <ident> <coupons|giftcards|creator-codes> <code>
//	remove <ident> <coupons|giftcards|creator-codes> <code>
//	auth <ident> <return_url>                  ссылки авторизации
//
// Конфигурация: config.yaml (см. -config) или переменные окружения TEBEX_*,
// в том числе из файла .env в текущей директории.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"reflect"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/ilkoid/tebex-headless/pkg/app"
	"github.com/ilkoid/tebex-headless/pkg/tebex"
	"github.com/ilkoid/tebex-headless/pkg/utils"
)

// Version — версия утилиты (заполняется при сборке)
var Version = "dev"

// CLI flags
var (
	flagConfig   = flag.String("config", "", "Path to config.yaml (default: auto-detect, then TEBEX_* env)")
	flagRaw      = flag.Bool("raw", false, "Output raw JSON without formatting")
	flagIP       = flag.String("ip", "", "Customer IP address for geo pricing")
	flagBasket   = flag.String("basket", "", "Basket ident for basket-scoped pricing")
	flagPackages = flag.Bool("packages", false, "Include packages in categories")
	flagUsername = flag.String("username", "", "Minecraft username for basket-create")
	flagCustom   = flag.String("custom", "", `Custom basket data as JSON, e.g. '{"check":true}'`)
)

// options — значения флагов, которые влияют на команды.
type options struct {
	Raw             bool
	IPAddress       string
	BasketIdent     string
	IncludePackages bool
	Username        string
	Custom          string
}

func main() {
	if err := run(); err != nil {
		fmt.Fprint(os.Stderr, renderError(err))
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		return fmt.Errorf("no command given")
	}

	// .env опционален, ошибку разбора логируем после InitLogger
	envErr := loadDotEnv(".env")

	// 1. Инициализируем конфигурацию
	cfg, cfgPath, err := app.InitializeConfig(&app.DefaultConfigPathFinder{ConfigFlag: *flagConfig})
	if err != nil {
		return err
	}

	// 2. Логгер
	if err := utils.InitLogger(cfg.App.LogsDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to init logger: %v\n", err)
	}
	ctx, shutdown := utils.SetupGracefulShutdownWithContext()
	defer shutdown()

	utils.Info("tebex-cli started", "version", Version, "config", cfgPath, "command", flag.Arg(0))
	if envErr != nil {
		utils.Warn("Failed to load .env", "error", envErr)
		fmt.Fprintf(os.Stderr, "Warning: %v\n", envErr)
	}

	// 3. Валидируем конфигурацию
	if err := app.ValidateWebstoreIdentifier(cfg.Tebex.WebstoreIdentifier); err != nil {
		return err
	}

	var clientOpts []tebex.Option
	if cfg.App.Debug {
		timeout, err := cfg.Tebex.TimeoutDuration()
		if err != nil {
			return err
		}
		clientOpts = append(clientOpts, tebex.WithHTTPClient(newDebugHTTPClient(&http.Client{Timeout: timeout})))
		utils.Debug("Debug request logging enabled", "timeout", timeout)
	}

	comps, err := app.Initialize(cfg, clientOpts...)
	if err != nil {
		utils.Error("Components initialization failed", "error", err)
		return err
	}

	utils.Info("Client initialized",
		"base_url", comps.Client.BaseURL(),
		"private_key_set", cfg.Tebex.PrivateKey != "")

	// 4. Выполняем команду
	opts := options{
		Raw:             *flagRaw,
		IPAddress:       *flagIP,
		BasketIdent:     *flagBasket,
		IncludePackages: *flagPackages,
		Username:        *flagUsername,
		Custom:          *flagCustom,
	}

	if err := runCommand(ctx, comps.Client, flag.Args(), opts, os.Stdout); err != nil {
		utils.Error("Command failed", "command", flag.Arg(0), "error", err, "type", tebex.ClassifyError(err))
		return err
	}

	utils.Info("Command completed", "command", flag.Arg(0))
	return nil
}

// loadDotEnv загружает переменные из .env. Отсутствие файла не ошибка.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}

// runCommand выполняет одну команду и пишет результат в out.
func runCommand(ctx context.Context, client *tebex.Client, args []string, opts options, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("no command given")
	}
	cmd, args := args[0], args[1:]

	categoryOpts := tebex.CategoryOptions{BasketIdent: opts.BasketIdent, IPAddress: opts.IPAddress}
	if opts.IncludePackages {
		categoryOpts.IncludePackages = tebex.Bool(true)
	}
	packageOpts := tebex.PackageOptions{BasketIdent: opts.BasketIdent, IPAddress: opts.IPAddress}

	var (
		result any
		render func() string
	)

	switch cmd {
	case "webstore":
		w, err := client.GetWebstore(ctx)
		if err != nil {
			return err
		}
		result, render = w, func() string { return renderWebstore(w) }

	case "pages":
		pages, err := client.GetPages(ctx)
		if err != nil {
			return err
		}
		result, render = pages, func() string { return renderPages(pages) }

	case "categories":
		categories, err := client.GetCategories(ctx, categoryOpts)
		if err != nil {
			return err
		}
		result, render = categories, func() string { return renderCategories(categories) }

	case "category":
		id, err := intArg(args, 0, "category id")
		if err != nil {
			return err
		}
		category, err := client.GetCategory(ctx, id, categoryOpts)
		if err != nil {
			return err
		}
		result, render = category, func() string { return renderCategory(category) }

	case "packages":
		packages, err := client.GetPackages(ctx, packageOpts)
		if err != nil {
			return err
		}
		result, render = packages, func() string { return renderPackages(packages) }

	case "package":
		id, err := intArg(args, 0, "package id")
		if err != nil {
			return err
		}
		pkg, err := client.GetPackage(ctx, id, packageOpts)
		if err != nil {
			return err
		}
		result, render = pkg, func() string { return renderPackage(pkg) }

	case "basket":
		if err := needArgs(args, 1, "basket <ident>"); err != nil {
			return err
		}
		basket, err := client.GetBasket(ctx, args[0])
		if err != nil {
			return err
		}
		result, render = basket, func() string { return renderBasket(basket) }

	case "basket-create":
		if err := needArgs(args, 2, "basket-create <complete_url> <cancel_url>"); err != nil {
			return err
		}
		req := tebex.CreateBasketRequest{
			CompleteURL: args[0],
			CancelURL:   args[1],
			IPAddress:   opts.IPAddress,
		}
		if opts.Custom != "" {
			if err := json.Unmarshal([]byte(opts.Custom), &req.Custom); err != nil {
				return fmt.Errorf("invalid -custom JSON: %w", err)
			}
		}

		var (
			basket *tebex.Basket
			err    error
		)
		if opts.Username != "" {
			basket, err = client.CreateMinecraftBasket(ctx, opts.Username, req)
		} else {
			basket, err = client.CreateBasket(ctx, req)
		}
		if err != nil {
			return err
		}
		result, render = basket, func() string { return renderBasket(basket) }

	case "basket-add":
		if err := needArgs(args, 3, "basket-add <ident> <package> <qty> [type]"); err != nil {
			return err
		}
		packageID, err := intArg(args, 1, "package id")
		if err != nil {
			return err
		}
		quantity, err := intArg(args, 2, "quantity")
		if err != nil {
			return err
		}
		packageType := tebex.PackageSingle
		if len(args) > 3 {
			packageType = tebex.PackageType(args[3])
		}
		basket, err := client.AddPackageToBasket(ctx, args[0], tebex.AddPackageRequest{
			PackageID: packageID,
			Quantity:  quantity,
			Type:      packageType,
		})
		if err != nil {
			return err
		}
		result, render = basket, func() string { return renderBasket(basket) }

	case "basket-gift":
		if err := needArgs(args, 3, "basket-gift <ident> <package> <username_id>"); err != nil {
			return err
		}
		packageID, err := intArg(args, 1, "package id")
		if err != nil {
			return err
		}
		basket, err := client.GiftPackage(ctx, args[0], packageID, args[2])
		if err != nil {
			return err
		}
		result, render = basket, func() string { return renderBasket(basket) }

	case "basket-remove":
		if err := needArgs(args, 2, "basket-remove <ident> <package>"); err != nil {
			return err
		}
		packageID, err := intArg(args, 1, "package id")
		if err != nil {
			return err
		}
		basket, err := client.RemovePackage(ctx, args[0], packageID)
		if err != nil {
			return err
		}
		result, render = basket, func() string { return renderBasket(basket) }

	case "basket-qty":
		if err := needArgs(args, 3, "basket-qty <ident> <package> <qty>"); err != nil {
			return err
		}
		packageID, err := intArg(args, 1, "package id")
		if err != nil {
			return err
		}
		quantity, err := intArg(args, 2, "quantity")
		if err != nil {
			return err
		}
		basket, err := client.UpdateQuantity(ctx, args[0], packageID, quantity)
		if err != nil {
			return err
		}
		result, render = basket, func() string { return renderBasket(basket) }

	case "apply", "remove":
		if err := needArgs(args, 3, cmd+" <ident> <coupons|giftcards|creator-codes> <code>"); err != nil {
			return err
		}
		code, err := tebex.ParseCodeBody(args[1], args[2])
		if err != nil {
			return err
		}
		var msg *tebex.Message
		if cmd == "apply" {
			msg, err = client.Apply(ctx, args[0], code)
		} else {
			msg, err = client.Remove(ctx, args[0], code)
		}
		if err != nil {
			return err
		}
		result, render = msg, func() string { return renderMessage(code.Kind(), msg) }

	case "auth":
		if err := needArgs(args, 2, "auth <ident> <return_url>"); err != nil {
			return err
		}
		urls, err := client.GetBasketAuthURLs(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		result, render = urls, func() string { return renderAuthURLs(urls) }

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}

	// 2xx без тела или с {"data": null}
	if isNilResult(result) {
		return fmt.Errorf("%s: %w", cmd, errEmptyResponse)
	}

	var text string
	if opts.Raw {
		raw, err := renderJSON(result)
		if err != nil {
			return err
		}
		text = raw
	} else {
		text = render()
	}

	_, err := io.WriteString(out, text)
	return err
}

// errEmptyResponse — API ответил 2xx, но без данных.
var errEmptyResponse = errors.New("empty response")

func isNilResult(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func needArgs(args []string, n int, usage string) error {
	if len(args) < n {
		return fmt.Errorf("usage: %s", usage)
	}
	return nil
}

func intArg(args []string, i int, name string) (int, error) {
	if len(args) <= i {
		return 0, fmt.Errorf("missing %s", name)
	}
	v, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, args[i], err)
	}
	return v, nil
}
