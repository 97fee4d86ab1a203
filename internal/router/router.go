package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/S-chezDev/grandmas-liquors-sub000/internal/config"
	"github.com/S-chezDev/grandmas-liquors-sub000/internal/handler"
	"github.com/S-chezDev/grandmas-liquors-sub000/internal/middleware"
	"github.com/S-chezDev/grandmas-liquors-sub000/internal/repository"
	"github.com/S-chezDev/grandmas-liquors-sub000/internal/service"
	"github.com/S-chezDev/grandmas-liquors-sub000/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)
	pedidoRepo := repository.NewPedidoRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	abonoRepo := repository.NewAbonoRepository(db)
	domicilioRepo := repository.NewDomicilioRepository(db)
	compraRepo := repository.NewCompraRepository(db)
	movimientoRepo := repository.NewMovimientoStockRepository(db)
	carritoStore := repository.NewCarritoStore(rdb, time.Duration(cfg.CarritoTTLMinutos)*time.Minute)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	productoSvc := service.NewProductoService(productoRepo, movimientoRepo)
	categoriaSvc := service.NewCategoriaService(categoriaRepo)
	clienteSvc := service.NewClienteService(clienteRepo)
	proveedorSvc := service.NewProveedorService(proveedorRepo)
	carritoSvc := service.NewCarritoService(carritoStore, productoRepo)
	pedidoSvc := service.NewPedidoService(pedidoRepo, productoRepo, clienteRepo, carritoStore)
	ventaSvc := service.NewVentaService(ventaRepo, productoRepo, pedidoRepo, clienteRepo, movimientoRepo, dispatcher)
	abonoSvc := service.NewAbonoService(abonoRepo, pedidoRepo, clienteRepo, dispatcher)
	domicilioSvc := service.NewDomicilioService(domicilioRepo, pedidoRepo)
	compraSvc := service.NewCompraService(compraRepo, productoRepo, proveedorRepo, movimientoRepo, cfg.TasaIVA)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	categoriasH := handler.NewCategoriasHandler(categoriaSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	proveedoresH := handler.NewProveedoresHandler(proveedorSvc)
	carritoH := handler.NewCarritoHandler(carritoSvc)
	pedidosH := handler.NewPedidosHandler(pedidoSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	abonosH := handler.NewAbonosHandler(abonoSvc)
	domiciliosH := handler.NewDomiciliosHandler(domicilioSvc)
	comprasH := handler.NewComprasHandler(compraSvc)
	movimientosH := handler.NewMovimientosHandler(movimientoRepo)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	todos := middleware.RequireRole("administrador", "vendedor", "domiciliario")
	vendedores := middleware.RequireRole("administrador", "vendedor")
	admin := middleware.RequireRole("administrador")

	v1 := r.Group("/v1", jwtMW)
	{
		// Catálogo — lectura para todos, escritura solo administrador
		v1.GET("/productos", todos, productosH.Listar)
		v1.GET("/productos/:id", todos, productosH.ObtenerPorID)
		v1.GET("/productos/alertas-stock", vendedores, productosH.AlertasStock)
		v1.GET("/productos/:id/movimientos", vendedores, movimientosH.ListarPorProducto)
		v1.PATCH("/productos/:id/stock", admin, productosH.AjustarStock)
		prods := v1.Group("/productos", admin)
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Desactivar)
			prods.PATCH("/:id/reactivar", productosH.Reactivar)
		}

		v1.GET("/categorias", todos, categoriasH.Listar)
		categorias := v1.Group("/categorias", admin)
		{
			categorias.POST("", categoriasH.Crear)
			categorias.PUT("/:id", categoriasH.Actualizar)
			categorias.DELETE("/:id", categoriasH.Desactivar)
		}

		// Carrito — sesión propia del usuario autenticado
		carrito := v1.Group("/carrito", vendedores)
		{
			carrito.GET("", carritoH.Ver)
			carrito.POST("/items", carritoH.Agregar)
			carrito.PUT("/items", carritoH.FijarCantidad)
			carrito.DELETE("/items/:id", carritoH.Quitar)
			carrito.DELETE("", carritoH.Vaciar)
		}

		// Pedidos
		pedidos := v1.Group("/pedidos", vendedores)
		{
			pedidos.POST("", pedidosH.Crear)
			pedidos.POST("/checkout", pedidosH.Checkout)
			pedidos.GET("", pedidosH.Listar)
			pedidos.GET("/:id", pedidosH.Obtener)
			pedidos.PUT("/:id", pedidosH.Actualizar)
			pedidos.PATCH("/:id/estado", pedidosH.CambiarEstado)
			pedidos.DELETE("/:id", pedidosH.Cancelar)
			pedidos.GET("/:id/saldo", abonosH.Saldo)
			pedidos.GET("/:id/abonos", abonosH.ListarPorPedido)
		}

		// Ventas
		v1.POST("/ventas", vendedores, ventasH.RegistrarDirecta)
		v1.POST("/ventas/por-pedido", vendedores, ventasH.RegistrarPorPedido)
		v1.GET("/ventas", vendedores, ventasH.Listar)
		v1.GET("/ventas/:id", vendedores, ventasH.Obtener)
		v1.DELETE("/ventas/:id", admin, ventasH.Anular)

		// Abonos
		v1.POST("/abonos", vendedores, abonosH.Registrar)
		v1.DELETE("/abonos/:id", admin, abonosH.Anular)

		// Domicilios — el domiciliario ve y avanza sus entregas
		v1.POST("/domicilios", vendedores, domiciliosH.Crear)
		v1.GET("/domicilios", todos, domiciliosH.Listar)
		v1.GET("/domicilios/:id", todos, domiciliosH.Obtener)
		v1.PATCH("/domicilios/:id/estado", todos, domiciliosH.ActualizarEstado)

		// Compras a proveedores
		compras := v1.Group("/compras", admin)
		{
			compras.POST("", comprasH.Crear)
			compras.GET("", comprasH.Listar)
			compras.GET("/:id", comprasH.Obtener)
			compras.PATCH("/:id/completar", comprasH.Completar)
			compras.DELETE("/:id", comprasH.Anular)
		}

		// Clientes
		clientes := v1.Group("/clientes", vendedores)
		{
			clientes.POST("", clientesH.Crear)
			clientes.GET("", clientesH.Listar)
			clientes.GET("/:id", clientesH.Obtener)
			clientes.PUT("/:id", clientesH.Actualizar)
		}
		v1.DELETE("/clientes/:id", admin, clientesH.Desactivar)

		// Proveedores
		proveedores := v1.Group("/proveedores", admin)
		{
			proveedores.POST("", proveedoresH.Crear)
			proveedores.GET("", proveedoresH.Listar)
			proveedores.GET("/:id", proveedoresH.Obtener)
			proveedores.PUT("/:id", proveedoresH.Actualizar)
			proveedores.DELETE("/:id", proveedoresH.Desactivar)
		}

		// Usuarios
		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
		}
	}

	return r
}
