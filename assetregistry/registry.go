// Static cross-network asset table.
// Within one network an assetId is unique; across networks two assets are
// the same logical asset iff their TokenId values match. The registry is
// immutable after construction and safe for concurrent reads.

package assetregistry

type NetworkAsset struct {
	AssetId   string    // network-scoped identifier (RGB contract id, ticker, ...)
	TokenId   uint32    // cross-network correlation id
	Precision uint8     // declared decimal precision of amounts
	Network   NetworkId // owning network
}

type Registry struct {
	assets map[NetworkId][]NetworkAsset
}

// NewRegistry builds a registry from preset rows. Later duplicates of an
// (network, assetId) pair are dropped so the first preset wins.
func NewRegistry(presets []NetworkAsset) *Registry {
	r := &Registry{assets: make(map[NetworkId][]NetworkAsset)}
	for _, a := range presets {
		if _, ok := r.AssetById(a.Network, a.AssetId); ok {
			continue
		}
		r.assets[a.Network] = append(r.assets[a.Network], a)
	}
	return r
}

// AssetById looks an asset up by its network-scoped identifier.
func (r *Registry) AssetById(network NetworkId, assetId string) (NetworkAsset, bool) {
	for _, a := range r.assets[network] {
		if a.AssetId == assetId {
			return a, true
		}
	}
	return NetworkAsset{}, false
}

// AssetByTokenId looks an asset up by its cross-network token id.
func (r *Registry) AssetByTokenId(network NetworkId, tokenId uint32) (NetworkAsset, bool) {
	for _, a := range r.assets[network] {
		if a.TokenId == tokenId {
			return a, true
		}
	}
	return NetworkAsset{}, false
}

// DefaultAsset returns the first asset of a network. Invoices issued for
// "any asset" resolve against it.
func (r *Registry) DefaultAsset(network NetworkId) (NetworkAsset, bool) {
	list := r.assets[network]
	if len(list) == 0 {
		return NetworkAsset{}, false
	}
	return list[0], true
}

// ResolveDestinationAsset finds the destination-network asset correlated
// with sourceAssetId on the source network. An empty sourceAssetId selects
// the destination's default asset. A false result means the mapping is
// unsupported; it is never an error.
func (r *Registry) ResolveDestinationAsset(source, destination NetworkId, sourceAssetId string) (NetworkAsset, bool) {
	if sourceAssetId == "" {
		return r.DefaultAsset(destination)
	}
	src, ok := r.AssetById(source, sourceAssetId)
	if !ok {
		return NetworkAsset{}, false
	}
	return r.AssetByTokenId(destination, src.TokenId)
}

// Networks lists the networks that carry at least one asset.
func (r *Registry) Networks() []NetworkId {
	out := make([]NetworkId, 0, len(r.assets))
	for n := range r.assets {
		out = append(out, n)
	}
	return out
}
