package model

// AssetKind identifies the storage policy for a binary asset.
type AssetKind string

const (
	AssetKindImage AssetKind = "image"
	AssetKindVideo AssetKind = "video"
)

func (k AssetKind) IsValid() bool {
	switch k {
	case AssetKindImage, AssetKindVideo:
		return true
	default:
		return false
	}
}

func (k AssetKind) String() string {
	return string(k)
}

// AssetRef is the stable handle a record keeps for an externally stored
// binary asset. ID addresses the asset in the blob store, URL is the
// retrievable location.
type AssetRef struct {
	ID  string
	URL string
}

// IsZero reports whether the reference points at no asset.
func (r AssetRef) IsZero() bool {
	return r.ID == ""
}
