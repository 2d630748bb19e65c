package events

import "github.com/atomicstack/touch-widgets/internal/logging"

type RemoteTracer struct{}

var Remote = RemoteTracer{}

func (RemoteTracer) Listen(addr string) {
	logging.Trace("remote.listen", map[string]interface{}{"addr": addr})
}

func (RemoteTracer) Connect(peer string) {
	logging.Trace("remote.connect", map[string]interface{}{"peer": peer})
}

func (RemoteTracer) Disconnect(peer string, err error) {
	payload := map[string]interface{}{"peer": peer}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("remote.disconnect", payload)
}

func (RemoteTracer) Rejected(peer, reason string) {
	logging.Trace("remote.rejected", map[string]interface{}{"peer": peer, "reason": reason})
}
