package appkit

import "github.com/tliron/commonlog"

var log = commonlog.GetLogger("objcbridge.appkit")
