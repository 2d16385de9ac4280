package types_test

import (
	"testing"

	types "github.com/okian/timeblock/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBand(t *testing.T) {
	Convey("Given the known bands", t, func() {
		bands := []types.Band{types.BandNone, types.BandShort, types.BandOptimal, types.BandLong}

		Convey("Then each should be valid and print its name", func() {
			for _, b := range bands {
				So(b.Valid(), ShouldBeTrue)
				So(b.String(), ShouldEqual, string(b))
			}
		})

		Convey("And an unknown band should be invalid", func() {
			So(types.Band("huge").Valid(), ShouldBeFalse)
			So(types.Band("").Valid(), ShouldBeFalse)
		})
	})
}
