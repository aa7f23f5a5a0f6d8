package assetregistry

// Production asset tables. Loaded once at process start and injected into
// the components that need them; tests substitute their own rows.
//
// TokenId 1 is the BTC-denominated asset, TokenId 4 the USD-denominated
// one. Per-network identifiers differ (RGB contract ids on the asset
// networks, ticker-style ids on the payment-channel network) while the
// token ids line them up.
func DefaultPresets() []NetworkAsset {
	return []NetworkAsset{
		// settlement network
		{AssetId: "rgb:2dkSTbr-jFhznbPmo-TQafzswCN-av4gTsJjX-ttx6CNou5-M98k8Zd", TokenId: 1, Precision: 8, Network: NetworkUtexo},
		{AssetId: "rgb:J2vHsTrB-WWLwJyp-eNBZv3Fx-QZySNCzp-kVkSbkgo-Yr9XrVm", TokenId: 4, Precision: 6, Network: NetworkUtexo},

		// signet-based execution network
		{AssetId: "rgb:tb7BeJmLn-pTEBC3nH8-WcfQ6tYBx-jwADTSeT9-qRhhZcAme-2CRqLQG", TokenId: 1, Precision: 8, Network: NetworkSignet},
		{AssetId: "rgb:tbF0qeMxR-yKppRW25m-6fnKq5kSV-3b24UYvWU-9AekRXQwc-x5YkNfW", TokenId: 4, Precision: 6, Network: NetworkSignet},

		// payment-channel network
		{AssetId: "BTC", TokenId: 1, Precision: 8, Network: NetworkLightning},
		{AssetId: "USDT", TokenId: 4, Precision: 6, Network: NetworkLightning},
	}
}
