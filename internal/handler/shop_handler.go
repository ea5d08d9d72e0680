package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CoinPackage is a purchasable coin bundle. Fulfillment happens outside this
// service; the catalog only drives the client's shop screen.
type CoinPackage struct {
	Coins    int    `json:"coins"`
	PriceUSD string `json:"price_usd"`
	Label    string `json:"label"`
	Popular  bool   `json:"popular"`
}

var coinPackages = []CoinPackage{
	{Coins: 100, PriceUSD: "1.00", Label: "Basic"},
	{Coins: 550, PriceUSD: "5.00", Label: "Recommended", Popular: true},
	{Coins: 1200, PriceUSD: "10.00", Label: "Premium"},
	{Coins: 3000, PriceUSD: "25.00", Label: "Business"},
}

type ShopHandler struct{}

func NewShopHandler() *ShopHandler { return &ShopHandler{} }

// Packages lists the coin bundles. GET /shop/packages
func (h *ShopHandler) Packages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"packages": coinPackages})
}
