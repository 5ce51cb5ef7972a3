package community

import "fmt"

func cacheKeyCommunity(id string) string {
	return fmt.Sprintf("community:%s", id)
}
