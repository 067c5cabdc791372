package format

// MagnetPrefix precedes the info-hash in every magnet link
const MagnetPrefix = "magnet:?xt=urn:btih:"

// MagnetLink builds a magnet URI from a BitTorrent info-hash.
// The hash is used verbatim: no validation, no percent-encoding.
func MagnetLink(hash string) string {
	return MagnetPrefix + hash
}
