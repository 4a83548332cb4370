package pokemon

// TypeTags lists the catalog type filters offered to browsers.
var TypeTags = []string{
	"normal", "fire", "water", "electric", "grass", "ice",
	"fighting", "poison", "ground", "flying", "psychic", "bug",
	"rock", "ghost", "dragon", "dark", "steel", "fairy",
}

func IsTypeTag(tag string) bool {
	for _, t := range TypeTags {
		if t == tag {
			return true
		}
	}
	return false
}
