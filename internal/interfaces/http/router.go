package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mnavarrov/erp-planta-api/internal/application/audit"
	"github.com/mnavarrov/erp-planta-api/internal/application/auth"
	"github.com/mnavarrov/erp-planta-api/internal/application/inventory"
	"github.com/mnavarrov/erp-planta-api/internal/application/orders"
	"github.com/mnavarrov/erp-planta-api/internal/application/production"
	"github.com/mnavarrov/erp-planta-api/internal/application/purchasing"
	"github.com/mnavarrov/erp-planta-api/internal/application/usecase"
	"github.com/mnavarrov/erp-planta-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MateriaPrimaUC *usecase.MateriaPrimaUseCase
	ProductoUC     *usecase.ProductoUseCase
	ClienteUC      *usecase.ClienteUseCase
	ProveedorUC    *usecase.ProveedorUseCase
	FormulaUC      *usecase.FormulaUseCase
	MovimientosUC  *usecase.MovimientosUseCase
	UsuarioUC      *usecase.UsuarioUseCase
	Ledger         *inventory.Ledger
	PedidosUC      *orders.UseCase
	RemisionPDF    *orders.PDFUseCase
	ComprasUC      *purchasing.UseCase
	ProduccionUC   *production.UseCase
	AuthUC         *auth.UseCase
	Auditoria      *audit.Service
	JWTSecret      string
	Env            string
	DevUserID      int64
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/registro", authHandler.Registrar)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token). En desarrollo se puede
	// fijar una identidad local con AUTH_DEV_USER_ID y trabajar sin token.
	authMW := AuthMiddleware(deps.JWTSecret)
	if deps.Env == "development" && deps.DevUserID != 0 {
		authMW = DevAuthMiddleware(deps.DevUserID)
	}
	protected := api.Group("/", authMW)

	// Ajustes manuales de stock: solo bodega (admin u operario)
	soloBodega := RequireRole(entity.RolAdmin, entity.RolOperario)

	// Materias primas
	mp := protected.Group("/materias-primas")
	mpHandler := NewMateriaPrimaHandler(deps.MateriaPrimaUC, deps.Ledger, deps.MovimientosUC, deps.Auditoria)
	mp.Post("/", mpHandler.Crear)
	mp.Get("/", mpHandler.List)
	mp.Get("/:id", mpHandler.GetByID)
	mp.Put("/:id", mpHandler.Actualizar)
	mp.Delete("/:id", mpHandler.Eliminar)
	mp.Post("/:id/ajustes", soloBodega, mpHandler.AjustarStock)
	mp.Get("/:id/movimientos", mpHandler.Movimientos)

	// Productos terminados
	productos := protected.Group("/productos")
	productoHandler := NewProductoHandler(deps.ProductoUC, deps.Ledger, deps.MovimientosUC, deps.Auditoria)
	productos.Post("/", productoHandler.Crear)
	productos.Get("/", productoHandler.List)
	productos.Get("/:id", productoHandler.GetByID)
	productos.Put("/:id", productoHandler.Actualizar)
	productos.Delete("/:id", productoHandler.Eliminar)
	productos.Post("/:id/ajustes", soloBodega, productoHandler.AjustarStock)
	productos.Get("/:id/movimientos", productoHandler.Movimientos)

	// Clientes
	clientes := protected.Group("/clientes")
	clienteHandler := NewClienteHandler(deps.ClienteUC, deps.Auditoria)
	clientes.Post("/", clienteHandler.Crear)
	clientes.Get("/", clienteHandler.List)
	clientes.Get("/:id", clienteHandler.GetByID)
	clientes.Put("/:id", clienteHandler.Actualizar)
	clientes.Delete("/:id", clienteHandler.Eliminar)

	// Proveedores
	proveedores := protected.Group("/proveedores")
	proveedorHandler := NewProveedorHandler(deps.ProveedorUC, deps.Auditoria)
	proveedores.Post("/", proveedorHandler.Crear)
	proveedores.Get("/", proveedorHandler.List)
	proveedores.Get("/:id", proveedorHandler.GetByID)
	proveedores.Put("/:id", proveedorHandler.Actualizar)
	proveedores.Delete("/:id", proveedorHandler.Eliminar)

	// Fórmulas de producción
	formulas := protected.Group("/formulas")
	formulaHandler := NewFormulaHandler(deps.FormulaUC, deps.Auditoria)
	formulas.Post("/", formulaHandler.Crear)
	formulas.Get("/", formulaHandler.List)
	formulas.Get("/:id", formulaHandler.GetByID)
	formulas.Delete("/:id", formulaHandler.Eliminar)

	// Pedidos de cliente
	pedidos := protected.Group("/pedidos")
	pedidoHandler := NewPedidoHandler(deps.PedidosUC, deps.RemisionPDF, deps.Auditoria)
	pedidos.Post("/", pedidoHandler.Crear)
	pedidos.Get("/", pedidoHandler.List)
	pedidos.Get("/:id", pedidoHandler.GetByID)
	pedidos.Delete("/:id", pedidoHandler.Eliminar)
	pedidos.Patch("/:id/estado", pedidoHandler.CambiarEstado)
	pedidos.Get("/:id/remision", pedidoHandler.Remision)

	// Compras: cotizaciones y órdenes de compra
	comprasHandler := NewComprasHandler(deps.ComprasUC, deps.Auditoria)
	cotizaciones := protected.Group("/cotizaciones")
	cotizaciones.Post("/", comprasHandler.CrearCotizacion)
	cotizaciones.Get("/", comprasHandler.ListCotizaciones)
	cotizaciones.Get("/:id", comprasHandler.GetCotizacion)

	ordenesCompra := protected.Group("/ordenes-compra")
	ordenesCompra.Post("/", comprasHandler.CrearOrdenCompra)
	ordenesCompra.Get("/", comprasHandler.ListOrdenesCompra)
	ordenesCompra.Get("/:id", comprasHandler.GetOrdenCompra)
	ordenesCompra.Patch("/:id/estado", soloBodega, comprasHandler.RecibirOrden)

	// Órdenes de producción
	produccion := protected.Group("/ordenes-produccion")
	produccionHandler := NewProduccionHandler(deps.ProduccionUC, deps.Auditoria)
	produccion.Post("/", soloBodega, produccionHandler.Crear)
	produccion.Get("/", produccionHandler.List)
	produccion.Get("/:id", produccionHandler.GetByID)
	produccion.Patch("/:id/finalizar", soloBodega, produccionHandler.Finalizar)

	// Administración: solo admin
	soloAdmin := RequireRole(entity.RolAdmin)

	usuarios := protected.Group("/usuarios", soloAdmin)
	usuarioHandler := NewUsuarioHandler(deps.UsuarioUC, deps.Auditoria)
	usuarios.Get("/", usuarioHandler.List)
	usuarios.Get("/:id", usuarioHandler.GetByID)
	usuarios.Patch("/:id/rol", usuarioHandler.CambiarRol)
	usuarios.Delete("/:id", usuarioHandler.Desactivar)

	auditoria := protected.Group("/auditoria", soloAdmin)
	auditoriaHandler := NewAuditoriaHandler(deps.Auditoria)
	auditoria.Get("/", auditoriaHandler.List)
}
