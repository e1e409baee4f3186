//go:build molangdebug

package cache

import "log"

func logMiss(source string) {
	log.Printf("molang cache: compiling %q", source)
}

func logHit(source string) {
	log.Printf("molang cache: reusing %q", source)
}
