package common

import (
  "context"
  "net"

  "h12.io/socks"
)

type ProxySession struct {
  Proxy string
}

func (s *ProxySession) DialContext(ctx context.Context, network, addr string) (net.Conn, error) {
  dial := socks.Dial(s.Proxy)
  return dial(network, addr)
}
