package filesystem

import (
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

func TestBackend(t *testing.T) {
	Convey("Filesystem backend", t, func() {
		Convey("Defaults to the OS filesystem", func() {
			SetOsFs()
			So(API().Name(), ShouldEqual, "OsFs")
		})

		Convey("Switches to memory", func() {
			SetMemMapFs()
			So(API().Name(), ShouldEqual, "MemMapFS")
		})

		Convey("Exists follows the active backend", func() {
			Use(afero.NewMemMapFs())
			So(Exists("/tmp/critique/a.txt"), ShouldBeFalse)
			So(API().WriteFile("/tmp/critique/a.txt", []byte("x"), 0o644), ShouldBeNil)
			So(Exists("/tmp/critique/a.txt"), ShouldBeTrue)
		})

		Convey("GacheFs writes through the active backend", func() {
			SetMemMapFs()
			var g GacheFs
			So(g.MkdirAll("/cache", 0o755), ShouldBeNil)
			f, err := g.OpenFile("/cache/x.json", os.O_CREATE|os.O_WRONLY, 0o644)
			So(err, ShouldBeNil)
			So(f.Close(), ShouldBeNil)
			So(Exists("/cache/x.json"), ShouldBeTrue)
		})
	})
}
