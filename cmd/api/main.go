package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/mnavarrov/erp-planta-api/internal/application/audit"
	"github.com/mnavarrov/erp-planta-api/internal/application/auth"
	"github.com/mnavarrov/erp-planta-api/internal/application/inventory"
	"github.com/mnavarrov/erp-planta-api/internal/application/orders"
	"github.com/mnavarrov/erp-planta-api/internal/application/production"
	"github.com/mnavarrov/erp-planta-api/internal/application/purchasing"
	"github.com/mnavarrov/erp-planta-api/internal/application/usecase"
	infrapdf "github.com/mnavarrov/erp-planta-api/internal/infrastructure/pdf"
	"github.com/mnavarrov/erp-planta-api/internal/infrastructure/postgres"
	httpRouter "github.com/mnavarrov/erp-planta-api/internal/interfaces/http"
	"github.com/mnavarrov/erp-planta-api/pkg/config"
	"github.com/mnavarrov/erp-planta-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	materiaPrimaRepo := postgres.NewMateriaPrimaRepository(pool)
	productoRepo := postgres.NewProductoRepository(pool)
	clienteRepo := postgres.NewClienteRepository(pool)
	proveedorRepo := postgres.NewProveedorRepository(pool)
	formulaRepo := postgres.NewFormulaRepository(pool)
	pedidoRepo := postgres.NewPedidoRepository(pool)
	cotizacionRepo := postgres.NewCotizacionRepository(pool)
	ordenCompraRepo := postgres.NewOrdenCompraRepository(pool)
	ordenProduccionRepo := postgres.NewOrdenProduccionRepository(pool)
	movMateriaPrimaRepo := postgres.NewMovimientoMateriaPrimaRepository(pool)
	movProductoRepo := postgres.NewMovimientoProductoRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	auditoriaRepo := postgres.NewAuditoriaRepository(pool)

	txRunner := postgres.NewTxRunner(pool)
	ledger := inventory.NewLedger(txRunner)
	auditoria := audit.NewService(auditoriaRepo, log)

	materiaPrimaUC := usecase.NewMateriaPrimaUseCase(materiaPrimaRepo)
	productoUC := usecase.NewProductoUseCase(productoRepo)
	clienteUC := usecase.NewClienteUseCase(clienteRepo)
	proveedorUC := usecase.NewProveedorUseCase(proveedorRepo)
	formulaUC := usecase.NewFormulaUseCase(formulaRepo, productoRepo)
	movimientosUC := usecase.NewMovimientosUseCase(movMateriaPrimaRepo, movProductoRepo)
	usuarioUC := usecase.NewUsuarioUseCase(usuarioRepo)

	pedidosUC := orders.NewUseCase(txRunner, pedidoRepo, productoRepo, clienteRepo)
	comprasUC := purchasing.NewUseCase(ledger, cotizacionRepo, ordenCompraRepo, proveedorRepo, movMateriaPrimaRepo, log)
	produccionUC := production.NewUseCase(txRunner, pedidoRepo, productoRepo, formulaRepo, materiaPrimaRepo, ordenProduccionRepo)

	// PDF: remisión de entrega del pedido
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	remisionPDFUC := orders.NewPDFUseCase(pedidoRepo, clienteRepo, productoRepo, pdfGenerator)

	authUC := auth.NewUseCase(usuarioRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ERP Planta API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		MateriaPrimaUC: materiaPrimaUC,
		ProductoUC:     productoUC,
		ClienteUC:      clienteUC,
		ProveedorUC:    proveedorUC,
		FormulaUC:      formulaUC,
		MovimientosUC:  movimientosUC,
		UsuarioUC:      usuarioUC,
		Ledger:         ledger,
		PedidosUC:      pedidosUC,
		RemisionPDF:    remisionPDFUC,
		ComprasUC:      comprasUC,
		ProduccionUC:   produccionUC,
		AuthUC:         authUC,
		Auditoria:      auditoria,
		JWTSecret:      cfg.JWT.Secret,
		Env:            cfg.App.Env,
		DevUserID:      cfg.Auth.DevUserID,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
