package handler

import (
	"net/http"

	"github.com/vfg2006/farm-market-api/internal/api/handler/router"
	"github.com/vfg2006/farm-market-api/internal/usecases/analytics"
	"github.com/vfg2006/farm-market-api/internal/usecases/authenticating"
	"github.com/vfg2006/farm-market-api/internal/usecases/catalog"
	"github.com/vfg2006/farm-market-api/internal/usecases/forum"
	"github.com/vfg2006/farm-market-api/internal/usecases/ordering"
	"github.com/vfg2006/farm-market-api/internal/usecases/translating"
	"github.com/vfg2006/farm-market-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: Register(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodPut,
			Handler:     UpdateMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Products(service catalog.CatalogService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/products",
			Method:  http.MethodGet,
			Handler: ListProducts(service),
		},
		{
			Path:    "/v1/products/:id",
			Method:  http.MethodGet,
			Handler: GetProduct(service),
		},
		{
			Path:        "/v1/products",
			Method:      http.MethodPost,
			Handler:     CreateProduct(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.FarmerOnly()},
		},
		{
			Path:        "/v1/products/:id",
			Method:      http.MethodPut,
			Handler:     UpdateProduct(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.FarmerOnly()},
		},
		{
			Path:        "/v1/products/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteProduct(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.FarmerOnly()},
		},
	}
}

func Orders(service ordering.OrderService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/orders",
			Method:      http.MethodGet,
			Handler:     ListOrders(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/orders/:id",
			Method:      http.MethodGet,
			Handler:     GetOrder(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/orders/:id/status",
			Method:      http.MethodPut,
			Handler:     UpdateOrderStatus(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Cart(service ordering.CartService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cart",
			Method:      http.MethodGet,
			Handler:     GetCart(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.ConsumerOrFarmer()},
		},
		{
			Path:        "/v1/cart/items",
			Method:      http.MethodPost,
			Handler:     AddCartItem(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.ConsumerOrFarmer()},
		},
		{
			Path:        "/v1/cart/items/:item_id",
			Method:      http.MethodPut,
			Handler:     UpdateCartItem(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.ConsumerOrFarmer()},
		},
		{
			Path:        "/v1/cart/items/:item_id",
			Method:      http.MethodDelete,
			Handler:     RemoveCartItem(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.ConsumerOrFarmer()},
		},
		{
			Path:        "/v1/cart/checkout",
			Method:      http.MethodPost,
			Handler:     CheckoutCart(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.ConsumerOrFarmer()},
		},
	}
}

func FarmerAnalytics(service analytics.Analyzer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/farmers/analytics",
			Method:      http.MethodGet,
			Handler:     GetFarmerDashboard(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.FarmerOnly()},
		},
	}
}

// Forum expõe o mural de discussão. O acesso é exclusivo dos agricultores.
func Forum(service forum.ForumService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/forum/posts",
			Method:      http.MethodGet,
			Handler:     ListForumPosts(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.FarmerOnly()},
		},
		{
			Path:        "/v1/forum/posts/:id",
			Method:      http.MethodGet,
			Handler:     GetForumPost(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.FarmerOnly()},
		},
		{
			Path:        "/v1/forum/posts",
			Method:      http.MethodPost,
			Handler:     CreateForumPost(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.FarmerOnly()},
		},
		{
			Path:        "/v1/forum/posts/:id",
			Method:      http.MethodPut,
			Handler:     UpdateForumPost(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.FarmerOnly()},
		},
		{
			Path:        "/v1/forum/posts/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteForumPost(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.FarmerOnly()},
		},
		{
			Path:        "/v1/forum/posts/:id/like",
			Method:      http.MethodPost,
			Handler:     ToggleForumLike(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.FarmerOnly()},
		},
		{
			Path:        "/v1/forum/posts/:id/comments",
			Method:      http.MethodPost,
			Handler:     AddForumComment(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.FarmerOnly()},
		},
		{
			Path:        "/v1/forum/posts/:id/comments/:comment_id",
			Method:      http.MethodDelete,
			Handler:     DeleteForumComment(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.FarmerOnly()},
		},
	}
}

func Translations(service translating.Translator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/translations",
			Method:      http.MethodPost,
			Handler:     Translate(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/translations/cache",
			Method:      http.MethodDelete,
			Handler:     ClearTranslationCache(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
